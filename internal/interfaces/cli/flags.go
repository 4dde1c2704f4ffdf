package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/secondhand/console/internal/domain/shared"
)

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q is not a valid id", shared.ErrInvalidInput, arg)
	}
	return id, nil
}

// pageFlags binds --page and --size. Unset flags are left to the backend.
type pageFlags struct {
	num  int
	size int
}

func (p *pageFlags) bind(cmd *cobra.Command) {
	cmd.Flags().IntVar(&p.num, "page", 1, "page number")
	cmd.Flags().IntVar(&p.size, "size", 10, "page size")
}

func (p *pageFlags) query(cmd *cobra.Command) shared.PageQuery {
	return shared.PageQuery{
		PageNum:  optInt(cmd, "page", p.num),
		PageSize: optInt(cmd, "size", p.size),
	}
}

// optInt returns &v when the flag was given on the command line.
func optInt(cmd *cobra.Command, name string, v int) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}
