package config

import (
	"context"
	"fmt"

	"gopkg.in/ini.v1"
)

// CredentialRegistry reads integration credential profiles from an INI file. Every
// key of a profile section becomes part of the opaque credential payload.
type CredentialRegistry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetCredentials(ctx context.Context, profile string) (map[string]string, error)
}

type iniRegistry struct {
	cfg *ini.File
}

func NewCredentialRegistry(path string) (CredentialRegistry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load credentials file: %w", err)
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

func (r *iniRegistry) GetCredentials(_ context.Context, profile string) (map[string]string, error) {
	section, err := r.cfg.GetSection(profile)
	if err != nil {
		return nil, fmt.Errorf("profile %s not found", profile)
	}
	if len(section.Keys()) == 0 {
		return nil, fmt.Errorf("profile %s has no credentials", profile)
	}
	return section.KeysHash(), nil
}
