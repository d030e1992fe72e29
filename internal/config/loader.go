package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Load builds the configuration from environment variables, then applies
// command-line overrides from args (typically os.Args[1:]) and validates the
// result. Flag usage and parse errors go to usage. A -h/-help argument
// returns flag.ErrHelp after printing usage.
func Load(args []string, usage io.Writer) (*Config, error) {
	cfg := &Config{}

	if err := loadStruct(reflect.ValueOf(cfg).Elem()); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	fs := flag.NewFlagSet("inobat", flag.ContinueOnError)
	fs.SetOutput(usage)
	bindFlags(fs, reflect.ValueOf(cfg).Elem())

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, err
		}
		return nil, fmt.Errorf("config flags: %w", err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("config flags: unexpected arguments %v", fs.Args())
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// loadStruct recursively populates struct fields from environment variables,
// falling back to the default tag.
func loadStruct(v reflect.Value) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldVal := v.Field(i)

		if !fieldVal.CanSet() {
			continue
		}

		if field.Type.Kind() == reflect.Struct {
			if err := loadStruct(fieldVal); err != nil {
				return err
			}
			continue
		}

		envName := field.Tag.Get("env")
		if envName == "" {
			continue
		}

		value, ok := os.LookupEnv(envName)
		if !ok || value == "" {
			value = field.Tag.Get("default")
		}
		if value == "" {
			continue
		}

		if err := setField(fieldVal, value); err != nil {
			return fmt.Errorf("invalid value for %s=%q: %w", envName, value, err)
		}
	}

	return nil
}

// bindFlags registers one flag per tagged field. The flag default is the
// value already loaded from the environment, so flags only override.
func bindFlags(fs *flag.FlagSet, v reflect.Value) {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldVal := v.Field(i)

		if field.Type.Kind() == reflect.Struct {
			bindFlags(fs, fieldVal)
			continue
		}

		name := field.Tag.Get("flag")
		if name == "" {
			continue
		}
		usage := field.Tag.Get("usage")
		if env := field.Tag.Get("env"); env != "" {
			usage = fmt.Sprintf("%s (env %s)", usage, env)
		}

		switch p := fieldVal.Addr().Interface().(type) {
		case *string:
			fs.StringVar(p, name, *p, usage)
		case *bool:
			fs.BoolVar(p, name, *p, usage)
		case *float64:
			// Parsed like the env value so "8,1" works on both.
			fv := fieldVal
			usage = fmt.Sprintf("%s (default %s)", usage, strconv.FormatFloat(*p, 'f', -1, 64))
			fs.Func(name, usage, func(s string) error { return setField(fv, s) })
		}
	}
}

// setField sets a reflect.Value from a string based on its type.
func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Float64:
		// Swiss and French exports write "8,1"
		f, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", "."), 64)
		if err != nil {
			return fmt.Errorf("invalid number: %w", err)
		}
		field.SetFloat(f)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %w", err)
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.Input.Path) == "" {
		errs = append(errs, "INOBAT_INPUT_PATH is required")
	}
	validEncodings := map[string]bool{"utf-8": true, "windows-1252": true, "auto": true}
	if !validEncodings[strings.ToLower(c.Input.Encoding)] {
		errs = append(errs, fmt.Sprintf("INOBAT_INPUT_ENCODING (%q) must be one of: utf-8, windows-1252, auto", c.Input.Encoding))
	}
	if n := len([]rune(c.Input.Delimiter)); n != 1 {
		errs = append(errs, fmt.Sprintf("INOBAT_CSV_DELIMITER (%q) must be a single character", c.Input.Delimiter))
	} else if d := c.Input.DelimiterRune(); d == '"' || d == '\r' || d == '\n' {
		errs = append(errs, fmt.Sprintf("INOBAT_CSV_DELIMITER (%q) is not a usable separator", c.Input.Delimiter))
	}

	if strings.TrimSpace(c.Output.Path) == "" {
		errs = append(errs, "INOBAT_OUTPUT_PATH is required")
	}
	if c.Output.Path != "" && c.Output.Path == c.Input.Path {
		errs = append(errs, "INOBAT_OUTPUT_PATH must differ from INOBAT_INPUT_PATH")
	}
	if c.Output.SQLitePath != "" && c.Output.SQLitePath == c.Output.Path {
		errs = append(errs, "INOBAT_SQLITE_PATH must differ from INOBAT_OUTPUT_PATH")
	}

	if strings.TrimSpace(c.Catalog.Source) == "" {
		errs = append(errs, "INOBAT_SOURCE must not be empty")
	}
	if _, err := time.Parse("2006-01-02", c.Catalog.EffectiveDate); err != nil {
		errs = append(errs, fmt.Sprintf("INOBAT_EFFECTIVE_DATE (%q) must be YYYY-MM-DD", c.Catalog.EffectiveDate))
	}
	if c.Catalog.VATRate < 0 || c.Catalog.VATRate > 100 {
		errs = append(errs, fmt.Sprintf("INOBAT_VAT_RATE (%g) must be 0-100", c.Catalog.VATRate))
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
