package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	validator "github.com/go-playground/validator/v10"
	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"pseudosel/css"
	"pseudosel/namespace"
	"pseudosel/selector"
	"pseudosel/sharing"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	NamespacesConfig struct {
		Default  string              `yaml:"default"`
		Prefixes []namespace.Binding `yaml:"prefixes" validate:"dive"`
	}

	SelectorsConfig struct {
		Origin     selector.Origin  `yaml:"origin" validate:"gte=0,lte=2"`
		Namespaces NamespacesConfig `yaml:"namespaces"`
	}

	SharingConfig struct {
		Attributes []sharing.Rule `yaml:"attributes" validate:"dive"`
	}

	CatalogConfig struct {
		Template string `yaml:"template" validate:"required"`
	}

	Config struct {
		Version   int             `yaml:"version" validate:"eq=1"`
		Selectors SelectorsConfig `yaml:"selectors"`
		Sharing   SharingConfig   `yaml:"sharing"`
		Catalog   CatalogConfig   `yaml:"catalog"`
		Logging   LoggingConfig   `yaml:"logging"`
	}
)

const (
	// NOTE: must match yaml field name above, alternative is to use struct
	// field name and reflection which I want to avoid for now
	CatalogTemplateFieldName TemplateFieldName = "template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(CatalogTemplateFieldName)),
)

// additionalChecks catches sharing rules the tags cannot express.
func additionalChecks(sl validator.StructLevel) {
	cfg, ok := sl.Current().Interface().(Config)
	if !ok {
		return
	}
	for i, r := range cfg.Sharing.Attributes {
		if r.Mode == sharing.ModeEquals && len(r.Values) == 0 {
			sl.ReportError(r.Values, fmt.Sprintf("Sharing.Attributes[%d].Values", i), "Values", "required_for_equals", "")
		}
		if r.Mode == sharing.ModePresent && len(r.Values) > 0 {
			sl.ReportError(r.Values, fmt.Sprintf("Sharing.Attributes[%d].Values", i), "Values", "excluded_for_present", "")
		}
	}
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, fmt.Errorf("configuration sanitizing failed: %w", err)
		}
		if err := gencfg.Validate(cfg, gencfg.WithAdditionalChecks(additionalChecks)); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration tamplate to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}

// NamespaceTable builds the table every scanned stylesheet starts from.
func (c *NamespacesConfig) NamespaceTable() (*namespace.Table, error) {
	return namespace.Build(c.Default, c.Prefixes)
}

// Policy returns the configured style-sharing policy, the built-in one when
// no attributes are listed.
func (c *SharingConfig) Policy() (*sharing.Policy, error) {
	if len(c.Attributes) == 0 {
		return sharing.Default(), nil
	}
	return sharing.New(c.Attributes)
}

// ParserOptions assembles stylesheet parser options for the given origin.
func (c *Config) ParserOptions(origin selector.Origin) (css.Options, error) {
	ns, err := c.Selectors.Namespaces.NamespaceTable()
	if err != nil {
		return css.Options{}, fmt.Errorf("bad namespaces configuration: %w", err)
	}
	policy, err := c.Sharing.Policy()
	if err != nil {
		return css.Options{}, fmt.Errorf("bad sharing configuration: %w", err)
	}
	return css.Options{
		Origin:     origin,
		Sharing:    policy,
		Namespaces: ns,
	}, nil
}
