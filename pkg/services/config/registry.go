package config

import (
	"context"
	"fmt"

	"github.com/de-tools/report-hub/pkg/models/domain"
	"gopkg.in/ini.v1"
)

// Registry resolves named connection profiles from an ini file.
type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetProfile(ctx context.Context, name string) (domain.ConnectionProfile, error)
}

type iniRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &iniRegistry{cfg: cfg}, nil
}

func (r *iniRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range r.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (r *iniRegistry) GetProfile(_ context.Context, name string) (domain.ConnectionProfile, error) {
	section, err := r.cfg.GetSection(name)
	if err != nil {
		return domain.ConnectionProfile{}, fmt.Errorf("profile %s not found", name)
	}

	profile := domain.ConnectionProfile{
		Name:        name,
		Type:        domain.ProfileType(section.Key("type").MustString(string(domain.ProfileTypeSalon))),
		Host:        section.Key("host").String(),
		Token:       section.Key("token").String(),
		SalonID:     section.Key("salon_id").String(),
		AccountCode: section.Key("account_code").String(),
		RetailCode:  section.Key("retail_code").String(),
		Currency:    section.Key("currency").MustString("INR"),
	}
	if profile.Host == "" {
		return domain.ConnectionProfile{}, fmt.Errorf("profile %s has no host", name)
	}
	return profile, nil
}
