package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	vOnce sync.Once
	v     *validator.Validate
)

func validate() *validator.Validate {
	vOnce.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())

		// report env var names for credentials and yaml keys for everything else
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			if env := fld.Tag.Get("env"); env != "" {
				return env
			}
			name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return v
}

// Validate checks the config before any network call is made.
func (c *Config) Validate() error {
	var msgs []string

	if err := validate().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validating config: %w", err)
		}
		for _, fe := range verrs {
			msgs = append(msgs, describe(fe))
		}
	}

	for key, val := range map[string]string{"feed.timeout": c.Feed.Timeout, "llm.timeout": c.LLM.Timeout} {
		if val == "" {
			continue
		}
		if d, err := time.ParseDuration(val); err != nil || d <= 0 {
			msgs = append(msgs, fmt.Sprintf("%s must be a positive duration (e.g. 30s), got %q", key, val))
		}
	}
	if c.LLM.Provider == "deepseek" && c.LLM.BaseURL == "" {
		msgs = append(msgs, "llm.base_url is required for provider deepseek (OpenAI-compatible endpoint)")
	}

	if len(msgs) == 0 {
		return nil
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	name := fe.Namespace()
	if i := strings.Index(name, "."); i >= 0 {
		name = name[i+1:]
	}
	if strings.ToUpper(fe.Field()) == fe.Field() && strings.Contains(fe.Field(), "_") {
		// credential fields are named after their env var
		name = fe.Field()
	}
	switch fe.Tag() {
	case "required", "required_unless":
		return name + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", name, fe.Param(), fe.Value())
	case "min":
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", name)
	default:
		return fmt.Sprintf("%s failed %q", name, fe.Tag())
	}
}
