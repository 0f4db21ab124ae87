package authz

import (
	"errors"
	"strings"

	"github.com/casbin/casbin/v2/model"
	"github.com/casbin/casbin/v2/persist"
)

// errReadOnly is returned for every mutation: the policy set is embedded at
// build time and cannot change at runtime.
var errReadOnly = errors.New("authz: policy set is read-only")

// staticAdapter loads policies from an embedded CSV document. It implements
// persist.Adapter but rejects all writes.
type staticAdapter struct {
	content string
}

func newStaticAdapter(content string) *staticAdapter {
	return &staticAdapter{content: content}
}

// LoadPolicy parses the embedded CSV into the Casbin model.
func (a *staticAdapter) LoadPolicy(m model.Model) error {
	for _, line := range strings.Split(a.content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := persist.LoadPolicyLine(line, m); err != nil {
			return err
		}
	}
	return nil
}

func (a *staticAdapter) SavePolicy(model.Model) error { return errReadOnly }

func (a *staticAdapter) AddPolicy(string, string, []string) error { return errReadOnly }

func (a *staticAdapter) RemovePolicy(string, string, []string) error { return errReadOnly }

func (a *staticAdapter) RemoveFilteredPolicy(string, string, int, ...string) error {
	return errReadOnly
}
