package jobfile

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/vk/lineextract/internal/ctxlog"
	"github.com/vk/lineextract/internal/extract"
)

// LoadEnvFile adds the variables of a dotenv file to the process
// environment. Variables that are already set keep their value.
func LoadEnvFile(ctx context.Context, path string) error {
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("%w: failed to load env file %s: %w", extract.ErrIO, path, err)
	}
	ctxlog.FromContext(ctx).Debug("Env file loaded.", "path", path)
	return nil
}
