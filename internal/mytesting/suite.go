package mytesting

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/suite"
)

type Suite struct {
	suite.Suite
	context.Context

	Cancel context.CancelFunc
}

func (s *Suite) SetupTest() {
	// Load .env from the project root when present; unit tests run
	// against mocks and must pass without one. A root .env.test is
	// exposed to the config resolver via ENV_TEST_FILE.
	if projectRoot, err := s.findProjectRoot(); err == nil {
		envFile := filepath.Join(projectRoot, ".env")
		if _, err := os.Stat(envFile); err == nil {
			s.Require().NoError(godotenv.Load(envFile))
		}

		testEnvFile := filepath.Join(projectRoot, ".env.test")
		if _, err := os.Stat(testEnvFile); err == nil && os.Getenv("ENV_TEST_FILE") == "" {
			os.Setenv("ENV_TEST_FILE", testEnvFile)
		}
	}

	s.Context, s.Cancel = context.WithCancel(context.TODO())
}

func (s *Suite) TearDownTest() {
	s.Cancel()
}

// findProjectRoot searches for go.mod file starting from the current file location
func (s *Suite) findProjectRoot() (string, error) {
	// Get the directory of the current file
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to get caller information")
	}

	dir := filepath.Dir(filename)

	// Walk up the directory tree looking for go.mod
	for {
		goModPath := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached the root directory
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("go.mod not found in any parent directory")
}
