// Package modelcheckconfig builds the process wide configuration for modelcheck.
//
// Values are layered, later layers winning:
//   1. Defaults()
//   2. an optional YAML file
//   3. optional dotenv files holding CFG_<KEY> (and TEST_FOLDER_ABS_PATH) lines
//   4. CFG_<KEY> environment variables, KEY being the upper-cased yaml key
//   5. command line flags (applied by the caller)
// The result is validated once and then only read.
package modelcheckconfig

import (
	"io"
	"io/ioutil"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/twitter/modelcheck/common/dialer"
)

const (
	EnvPrefix = "CFG_"

	// Base path of the checked out model-backend tree holding the test data.
	TestFolderEnv = "TEST_FOLDER_ABS_PATH"

	// Fixture location below the test folder.
	FixtureRelPath = "integration-test/data/dummy-cls-model.zip"
)

type Config struct {
	// REST base URL, e.g. http://localhost:8083
	APIHost string `yaml:"api_host"`
	// gRPC target, host:port
	GRPCAddr string `yaml:"grpc_addr"`

	ModelDefinition string `yaml:"model_definition"`
	Owner           string `yaml:"owner"`
	// Sent as the owner-id header on REST calls when set.
	OwnerID        string `yaml:"owner_id"`
	Visibility     string `yaml:"visibility"`
	NewDescription string `yaml:"new_description"`

	// Explicit fixture path. Empty means TestFolder (or $TEST_FOLDER_ABS_PATH) + FixtureRelPath.
	Fixture    string `yaml:"fixture"`
	TestFolder string `yaml:"test_folder"`

	DialTimeout    time.Duration `yaml:"dial_timeout"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	// Pester attempts per REST call, 1 means no retry.
	RestTries int `yaml:"rest_tries"`
	// How long to wait for the health endpoint before a run, 0 skips the probe.
	ReadyTimeout time.Duration `yaml:"ready_timeout"`

	LogLevel string `yaml:"log_level"`
}

func Defaults() Config {
	return Config{
		APIHost:         "http://localhost:8083",
		GRPCAddr:        "localhost:8083",
		ModelDefinition: "model-definitions/local",
		Owner:           "users/local-user",
		Visibility:      "VISIBILITY_PRIVATE",
		NewDescription:  "new_description",
		DialTimeout:     10 * time.Second,
		RequestTimeout:  30 * time.Second,
		RestTries:       1,
		LogLevel:        "info",
	}
}

// Load returns Defaults() overlaid with the file at path (skipped when path is
// empty), then with each of envFiles and then with CFG_ environment variables.
func Load(path string, envFiles ...string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		data, err := ioutil.ReadFile(path)
		if err != nil {
			return cfg, errors.Wrapf(err, "reading config file %s", path)
		}
		if err := Parse(data, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "parsing config file %s", path)
		}
		log.Debugf("loaded config file %s", path)
	}
	for _, envFile := range envFiles {
		environ, err := ReadEnvFile(envFile)
		if err != nil {
			return cfg, err
		}
		if err := ApplyEnv(&cfg, environ); err != nil {
			return cfg, errors.Wrapf(err, "env file %s", envFile)
		}
		applyTestFolder(&cfg, environ)
	}
	if err := ApplyEnv(&cfg, os.Environ()); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Parse overlays YAML data onto cfg. Unknown keys are rejected.
func Parse(data []byte, cfg *Config) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// ApplyEnv overlays KEY=VALUE pairs whose key starts with EnvPrefix. The rest of
// the key, lower-cased, names the yaml field (CFG_API_HOST -> api_host).
func ApplyEnv(cfg *Config, environ []string) error {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, kv := range environ {
		if !strings.HasPrefix(kv, EnvPrefix) {
			continue
		}
		parts := strings.SplitN(strings.TrimPrefix(kv, EnvPrefix), "=", 2)
		if len(parts) != 2 || !knownKey(strings.ToLower(parts[0])) {
			continue
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: strings.ToLower(parts[0])},
			&yaml.Node{Kind: yaml.ScalarNode, Value: strings.TrimSpace(parts[1])})
	}
	if len(node.Content) == 0 {
		return nil
	}
	if err := node.Decode(cfg); err != nil {
		return errors.Wrap(err, "applying "+EnvPrefix+" environment")
	}
	return nil
}

// ReadEnvFile returns the KEY=VALUE lines of a dotenv file, sorted by key.
func ReadEnvFile(path string) ([]string, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading env file %s", path)
	}
	environ := make([]string, 0, len(vars))
	for k, v := range vars {
		environ = append(environ, k+"="+v)
	}
	sort.Strings(environ)
	return environ, nil
}

// A TEST_FOLDER_ABS_PATH line in an env file stands in for the process variable,
// unless test_folder is already set.
func applyTestFolder(cfg *Config, environ []string) {
	if cfg.TestFolder != "" {
		return
	}
	for _, kv := range environ {
		if strings.HasPrefix(kv, TestFolderEnv+"=") {
			cfg.TestFolder = strings.TrimPrefix(kv, TestFolderEnv+"=")
		}
	}
}

func knownKey(key string) bool {
	for _, k := range Keys() {
		if k == key {
			return true
		}
	}
	return false
}

// Keys lists the yaml keys of Config.
func Keys() []string {
	return []string{
		"api_host", "grpc_addr", "model_definition", "owner", "owner_id", "visibility",
		"new_description", "fixture", "test_folder", "dial_timeout", "request_timeout",
		"rest_tries", "ready_timeout", "log_level",
	}
}

func (c Config) Validate() error {
	u, err := url.Parse(c.APIHost)
	if err != nil {
		return errors.Wrapf(err, "api_host %q", c.APIHost)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.Errorf("api_host %q must be an http(s) URL", c.APIHost)
	}
	if c.GRPCAddr == "" || !strings.Contains(c.GRPCAddr, ":") {
		return errors.Errorf("grpc_addr %q must be host:port", c.GRPCAddr)
	}
	if !strings.HasPrefix(c.ModelDefinition, "model-definitions/") || c.ModelDefinition == "model-definitions/" {
		return errors.Errorf("model_definition %q must be model-definitions/<id>", c.ModelDefinition)
	}
	if !strings.HasPrefix(c.Owner, "users/") {
		return errors.Errorf("owner %q must be users/<id>", c.Owner)
	}
	if c.RestTries < 1 {
		return errors.Errorf("rest_tries must be >= 1, got %d", c.RestTries)
	}
	if c.DialTimeout <= 0 || c.RequestTimeout <= 0 {
		return errors.New("dial_timeout and request_timeout must be positive")
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "log_level")
	}
	return nil
}

// FixturePath resolves the model artifact uploaded by the create step.
func (c Config) FixturePath() (string, error) {
	if c.Fixture != "" {
		return c.Fixture, nil
	}
	folder, err := dialer.NewRequiredResolver(TestFolderEnv, dialer.NewCompositeResolver(
		dialer.NewConstantResolver(c.TestFolder),
		dialer.NewEnvResolver(TestFolderEnv),
	)).Resolve()
	if err != nil {
		return "", err
	}
	return filepath.Join(folder, FixtureRelPath), nil
}

// FixtureFile is the loaded model artifact.
type FixtureFile struct {
	Name    string
	Content []byte
}

func (c Config) ReadFixture() (FixtureFile, error) {
	path, err := c.FixturePath()
	if err != nil {
		return FixtureFile{}, err
	}
	content, err := ioutil.ReadFile(path)
	if err != nil {
		return FixtureFile{}, errors.Wrap(err, "reading fixture")
	}
	return FixtureFile{Name: filepath.Base(path), Content: content}, nil
}

func (c Config) String() string {
	out, err := yaml.Marshal(c)
	if err != nil {
		return err.Error()
	}
	return string(out)
}
