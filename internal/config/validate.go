package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/maruel/unicorn/internal/errors"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateMode(); err != nil {
		return err
	}
	if err := c.validatePlacement(); err != nil {
		return err
	}
	if err := c.validateFields(); err != nil {
		return err
	}
	if err := c.validateWatch(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateMode() error {
	switch c.Mode {
	case ModeWrite, ModeTransform:
		return nil
	default:
		return errors.InvalidConfig(fmt.Sprintf("mode must be %q or %q, got %q", ModeWrite, ModeTransform, c.Mode))
	}
}

func (c *Config) validatePlacement() error {
	if c.ParentItem != "" && c.Parent != nil {
		return errors.InvalidConfig("parentItem and parent are mutually exclusive")
	}
	if c.Parent != nil && (strings.TrimSpace(c.Parent.ID) == "" || strings.TrimSpace(c.Parent.Path) == "") {
		return errors.InvalidConfig("parent.id and parent.path must be set")
	}
	if c.OutputPath == "" && c.ParentItem == "" && c.Parent == nil {
		return errors.InvalidConfig("one of outputPath, parentItem or parent must be set")
	}
	if c.Mode == ModeWrite && c.OutputPath == "" && c.ParentItem == "" {
		return errors.InvalidConfig("write mode needs outputPath or parentItem to locate records")
	}
	return nil
}

func (c *Config) validateFields() error {
	for i, f := range c.Fields {
		if strings.TrimSpace(f.ID) == "" {
			return errors.InvalidConfig(fmt.Sprintf("fields[%d].id must be set", i))
		}
	}
	for ext := range c.Types {
		if ext == "" {
			return errors.InvalidConfig("types keys must be file extensions")
		}
	}
	return nil
}

func (c *Config) validateWatch() error {
	d, err := time.ParseDuration(c.Watch.Interval)
	if err != nil {
		return errors.InvalidConfig(fmt.Sprintf("watch.interval: %v", err))
	}
	if d <= 0 {
		return errors.InvalidConfig("watch.interval must be positive")
	}
	return nil
}
