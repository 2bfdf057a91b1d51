package trivy

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
	"github.com/google/go-containerregistry/pkg/name"
	"github.com/hashicorp/go-version"
	"k8s.io/klog/v2"

	"github.com/thc-devops/vulnsummary/pkg/etc"
	"github.com/thc-devops/vulnsummary/pkg/ext"
	"github.com/thc-devops/vulnsummary/pkg/runner"
	"github.com/thc-devops/vulnsummary/pkg/vulnsummary"
)

// MinVersion is the oldest Trivy release supported by Scanner. It is the
// first release that writes reports with a Results array.
const MinVersion = "0.20.0"

// Scanner is the interface that wraps methods of the Trivy CLI.
type Scanner interface {
	// Scan scans a container image and writes the JSON report to outputPath,
	// whose extension is replaced with .json. A unique path in the temporary
	// directory is used if outputPath is blank. It returns the report path.
	Scan(ctx context.Context, imageRef string, outputPath string) (string, error)

	// Version returns the version of the Trivy executable.
	Version(ctx context.Context) (*version.Version, error)
}

type scanner struct {
	config      etc.ScannerTrivy
	executor    Executor
	idGenerator ext.IDGenerator
	logger      logr.Logger
}

// Option configures a Scanner constructed with NewScanner.
type Option func(*scanner)

// WithExecutor overrides the Executor used to run Trivy.
func WithExecutor(executor Executor) Option {
	return func(s *scanner) {
		s.executor = executor
	}
}

// WithIDGenerator overrides the generator of report file names.
func WithIDGenerator(idGenerator ext.IDGenerator) Option {
	return func(s *scanner) {
		s.idGenerator = idGenerator
	}
}

// WithLogger overrides the default klog backed logger.
func WithLogger(logger logr.Logger) Option {
	return func(s *scanner) {
		s.logger = logger
	}
}

// NewScanner constructs a new Scanner which runs the Trivy executable
// configured by etc.ScannerTrivy on the local host.
func NewScanner(config etc.ScannerTrivy, opts ...Option) Scanner {
	s := &scanner{
		config:      config,
		executor:    NewExecutor(),
		idGenerator: ext.NewUUIDGenerator(),
		logger:      klog.Background().WithName("trivy"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *scanner) Scan(ctx context.Context, imageRef string, outputPath string) (string, error) {
	if _, err := name.ParseReference(imageRef); err != nil {
		return "", fmt.Errorf("invalid image reference: %w", err)
	}
	if outputPath == "" {
		outputPath = filepath.Join(os.TempDir(), vulnsummary.ReportFilePrefix+s.idGenerator.GenerateID())
	}
	outputPath = withJSONExtension(outputPath)

	args := []string{
		"image",
		"--timeout", s.config.GetTimeoutFlag(),
		"--format", "json",
		"-o", outputPath,
		imageRef,
	}
	result, err := s.execute(ctx, args...)
	if err != nil {
		return "", fmt.Errorf("scanning image: %s: %w", imageRef, err)
	}
	if result.ExitCode != 0 {
		return "", fmt.Errorf("failed to scan image: %s (exit code: %d): %s",
			imageRef, result.ExitCode, strings.TrimSpace(string(result.Stderr)))
	}
	s.logger.Info("Trivy scan completed", "image", imageRef, "report", outputPath)
	return outputPath, nil
}

type versionInfo struct {
	Version string `json:"Version"`
}

func (s *scanner) Version(ctx context.Context) (*version.Version, error) {
	result, err := s.execute(ctx, "version", "--format", "json")
	if err != nil {
		return nil, fmt.Errorf("getting trivy version: %w", err)
	}
	if result.ExitCode != 0 {
		return nil, fmt.Errorf("failed to get trivy version (exit code: %d): %s",
			result.ExitCode, strings.TrimSpace(string(result.Stderr)))
	}
	var info versionInfo
	if err := json.Unmarshal(result.Stdout, &info); err != nil {
		return nil, fmt.Errorf("decoding trivy version: %w", err)
	}
	v, err := version.NewVersion(info.Version)
	if err != nil {
		return nil, fmt.Errorf("parsing trivy version: %w", err)
	}
	return v, nil
}

// CheckVersion returns an error if v is older than MinVersion.
func CheckVersion(v *version.Version) error {
	constraint, err := version.NewConstraint(">= " + MinVersion)
	if err != nil {
		return err
	}
	if !constraint.Check(v.Core()) {
		return fmt.Errorf("unsupported trivy version: %s: at least %s is required", v, MinVersion)
	}
	return nil
}

// execute runs Trivy bounded by the configured timeout.
func (s *scanner) execute(ctx context.Context, args ...string) (ExecResult, error) {
	var result ExecResult
	s.logger.V(1).Info("Running trivy", "binary", s.config.Binary, "args", args)
	err := runner.NewWithTimeout(s.config.Timeout).Run(ctx, runner.RunnableFunc(func(ctx context.Context) error {
		var err error
		result, err = s.executor.Execute(ctx, s.config.Binary, args...)
		return err
	}))
	if err != nil {
		return ExecResult{}, err
	}
	return result, nil
}

func withJSONExtension(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".json"
}
