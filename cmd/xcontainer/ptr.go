package main

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/panjf2000/ants/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/benz9527/xcontainer/lib/ptr"
	"github.com/benz9527/xcontainer/xlog"
)

type payload struct {
	name string
}

func newPtrCmd(root *rootOptions) *cobra.Command {
	var (
		workers int
		locks   int
	)
	cmd := &cobra.Command{
		Use:   "ptr",
		Short: "Share one referent across a worker pool and lock it through weak pointers",
		RunE: func(cmd *cobra.Command, args []string) error {
			if workers <= 0 {
				return fmt.Errorf("workers must be positive, got %d", workers)
			}
			pool, err := ants.NewPool(workers, ants.WithLogger(xlog.NewAntsXLogger(root.logger)))
			if err != nil {
				return err
			}
			defer pool.Release()

			var deleted atomic.Int64
			sp := ptr.MakeShared(payload{name: "shared"}, ptr.WithDeleter(func(p *payload) {
				deleted.Add(1)
				root.logger.Debug("referent deleted", zap.String("name", p.name))
			}))
			wp := ptr.NewWeakPtr(sp)
			defer wp.Release()

			var (
				wg      sync.WaitGroup
				locked  atomic.Int64
				expired atomic.Int64
			)
			for i := 0; i < workers; i++ {
				owner, watcher := sp.Clone(), wp.Clone()
				wg.Add(1)
				if err = pool.Submit(func() {
					defer wg.Done()
					defer watcher.Release()
					for j := 0; j < locks; j++ {
						if j == locks/2 {
							owner.Release()
						}
						if p := watcher.Lock(); p.Valid() {
							locked.Add(1)
							p.Release()
						} else {
							expired.Add(1)
						}
					}
					owner.Release()
				}); err != nil {
					wg.Done()
					owner.Release()
					watcher.Release()
					return err
				}
			}
			before := sp.UseCount()
			sp.Release()
			wg.Wait()

			tbl := newTable(cmd.OutOrStdout(), "metric", "value")
			tbl.AppendRows([]table.Row{
				{"owners before release", before},
				{"successful locks", locked.Load()},
				{"expired locks", expired.Load()},
				{"deleter calls", deleted.Load()},
				{"expired", wp.Expired()},
			})
			tbl.Render()
			return nil
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 8, "pool size and number of owners")
	cmd.Flags().IntVar(&locks, "locks", 1000, "weak locks per worker")
	return cmd
}
