package rm

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/saga/pkg/app"
)

// Rm deletes one entry by id.
type Rm struct {
	Service *app.Service

	ID string
}

func (n *Rm) Do(ctx context.Context) error {
	if err := n.Service.Delete(ctx, n.ID); err != nil {
		return err
	}
	f := color.New(color.Faint)
	_, _ = f.Println(fmt.Sprintf("deleted %s", n.ID))
	return nil
}
