package doctor

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/toastbar/internal/core/config"
)

// ConfigCheck validates the loaded configuration and reports warnings.
type ConfigCheck struct {
	cfg  *config.Config
	path string
}

// NewConfigCheck creates a config check for cfg loaded from path.
func NewConfigCheck(cfg *config.Config, path string) *ConfigCheck {
	return &ConfigCheck{cfg: cfg, path: path}
}

func (c *ConfigCheck) Name() string {
	return "Configuration"
}

func (c *ConfigCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	switch _, err := os.Stat(c.path); {
	case c.path == "":
		result.Items = append(result.Items, CheckItem{Label: "config file", Status: StatusPass, Detail: "defaults"})
	case errors.Is(err, os.ErrNotExist):
		result.Items = append(result.Items, CheckItem{Label: "config file", Status: StatusPass, Detail: "not found, using defaults"})
	default:
		result.Items = append(result.Items, CheckItem{Label: "config file", Status: StatusPass, Detail: c.path})
	}

	if err := c.cfg.ValidateDeep(c.path); err != nil {
		var fieldErrs criterio.FieldErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				result.Items = append(result.Items, CheckItem{
					Label:  fe.Field,
					Status: StatusFail,
					Detail: fe.Err.Error(),
				})
			}
		} else {
			result.Items = append(result.Items, CheckItem{Label: "validation", Status: StatusFail, Detail: err.Error()})
		}
	} else {
		result.Items = append(result.Items, CheckItem{Label: "validation", Status: StatusPass})
	}

	for _, w := range c.cfg.Warnings() {
		result.Items = append(result.Items, CheckItem{
			Label:  strings.ToLower(w.Category) + "." + w.Item,
			Status: StatusWarn,
			Detail: w.Message,
		})
	}

	return result
}
