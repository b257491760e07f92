package report

import (
	"context"
	"testing"

	"github.com/de-tools/report-hub/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubController struct{ name string }

func (s *stubController) Describe() domain.ReportInfo { return domain.ReportInfo{Name: s.name} }
func (s *stubController) Run(context.Context, domain.ReportQuery) (*domain.ReportPage, error) {
	return &domain.ReportPage{Report: s.name}, nil
}
func (s *stubController) Export(context.Context, domain.ReportQuery) (*domain.ReportExport, error) {
	return &domain.ReportExport{Report: s.name}, nil
}

func stubFactory(name string) ControllerFactory {
	return func(Dependencies) (Controller, error) {
		return &stubController{name: name}, nil
	}
}

func TestRegistry_RegisterAndCreate(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register("customer-visit", stubFactory("customer-visit")))
	require.NoError(t, r.Register("cash-flow", stubFactory("cash-flow")))

	ctrl, err := r.Create("customer-visit", Dependencies{})
	require.NoError(t, err)
	assert.Equal(t, "customer-visit", ctrl.Describe().Name)

	assert.Equal(t, []string{"cash-flow", "customer-visit"}, r.ListReports())
}

func TestRegistry_Validation(t *testing.T) {
	r := NewRegistry()

	assert.Error(t, r.Register("", stubFactory("x")))
	assert.Error(t, r.Register("x", nil))

	require.NoError(t, r.Register("x", stubFactory("x")))
	assert.Error(t, r.Register("x", stubFactory("x")), "duplicate registration")

	_, err := r.Create("missing", Dependencies{})
	assert.Error(t, err)
}
