package knock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ErrNoHosts is returned when a request resolves to no destination.
var ErrNoHosts = errors.New("knock: no destination host")

// Result is the outcome of knocking one host.
type Result struct {
	Host     string
	ExitCode int
	Output   string
	// Command is the executed command line with the encryption key masked.
	Command string
}

// OK reports whether fwknop exited successfully.
func (r Result) OK() bool { return r.ExitCode == 0 }

// Client runs the fwknop binary.
type Client struct {
	binary string
	tmpDir string
	runner Runner
	logger *zap.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithRunner replaces the process runner.
func WithRunner(runner Runner) ClientOption {
	return func(c *Client) {
		if runner != nil {
			c.runner = runner
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient builds a client for the fwknop binary at path. tmpDir holds the
// password files and is used as HOME and working directory of the process.
func NewClient(binary, tmpDir string, options ...ClientOption) *Client {
	c := &Client{
		binary: binary,
		tmpDir: tmpDir,
		runner: ExecRunner{},
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Knock sends one knock per host. Each host gets its own password file
// holding "host:key", removed once the process exits. A process that cannot
// be started is reported as a failed Result; only password file problems
// abort the run.
func (c *Client) Knock(ctx context.Context, req Request) ([]Result, error) {
	if len(req.Hosts) == 0 {
		return nil, ErrNoHosts
	}

	results := make([]Result, 0, len(req.Hosts))
	for _, host := range req.Hosts {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		result, err := c.knockHost(ctx, req, host)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

func (c *Client) knockHost(ctx context.Context, req Request, host string) (Result, error) {
	passwordFile, err := c.writePasswordFile(host, req.EncryptionKey)
	if err != nil {
		return Result{}, err
	}
	defer func() {
		if rmErr := os.Remove(passwordFile); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			c.logger.Warn("remove password file", zap.String("path", passwordFile), zap.Error(rmErr))
		}
	}()

	cmd := Command{
		Path: c.binary,
		Args: Args(req, host, passwordFile),
		Dir:  c.tmpDir,
		Env:  []string{"HOME=" + c.tmpDir},
	}
	result := Result{
		Host:    host,
		Command: maskKey(strings.Join(append([]string{cmd.Path}, cmd.Args...), " "), req.EncryptionKey),
	}
	c.logger.Debug("run fwknop", zap.String("host", host), zap.String("command", result.Command))

	out, err := c.runner.Run(ctx, cmd)
	result.ExitCode = out.ExitCode
	result.Output = maskKey(out.Combined, req.EncryptionKey)
	if err != nil {
		result.ExitCode = -1
		result.Output = strings.TrimSpace(strings.Join([]string{result.Output, err.Error()}, "\n"))
	}

	if result.OK() {
		c.logger.Info("knock sent", zap.String("host", host))
	} else {
		c.logger.Warn("knock failed", zap.String("host", host), zap.Int("exit_code", result.ExitCode))
	}
	return result, nil
}

func (c *Client) writePasswordFile(host, key string) (string, error) {
	f, err := os.CreateTemp(c.tmpDir, ".fwknop-*.pass")
	if err != nil {
		return "", fmt.Errorf("knock: create password file: %w", err)
	}
	name := f.Name()
	if err := f.Chmod(0o600); err != nil {
		_ = f.Close()
		_ = os.Remove(name)
		return "", fmt.Errorf("knock: chmod password file: %w", err)
	}
	if _, err := f.WriteString(host + ":" + key); err != nil {
		_ = f.Close()
		_ = os.Remove(name)
		return "", fmt.Errorf("knock: write password file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(name)
		return "", fmt.Errorf("knock: close password file: %w", err)
	}
	return name, nil
}

func maskKey(text, key string) string {
	if key == "" {
		return text
	}
	return strings.ReplaceAll(text, key, "****")
}

// CheckTmpDir verifies that dir exists, is a directory and is writable.
func CheckTmpDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("knock: tmp dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("knock: tmp dir %q is not a directory", dir)
	}
	probe, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return fmt.Errorf("knock: tmp dir %q is not writable: %w", dir, err)
	}
	name := probe.Name()
	_ = probe.Close()
	return os.Remove(filepath.Clean(name))
}
