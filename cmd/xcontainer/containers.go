package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/benz9527/xcontainer/lib/kv"
	"github.com/benz9527/xcontainer/lib/queue"
	"github.com/benz9527/xcontainer/lib/tree"
	"github.com/benz9527/xcontainer/lib/vector"
)

var defaultKeys = []int{10, 20, 30, 15, 25, 5, 1}

func newVectorCmd(root *rootOptions) *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "vector",
		Short: "Push 0..n-1 into a vector and print it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if n < 0 {
				return fmt.Errorf("negative element count %d", n)
			}
			vec := vector.NewVector[int]()
			lastCap := vec.Cap()
			for i := 0; i < n; i++ {
				if err := vec.PushBack(i); err != nil {
					return err
				}
				if vec.Cap() != lastCap {
					root.logger.Debug("vector grew", zap.Int("len", vec.Len()), zap.Int("cap", vec.Cap()))
					lastCap = vec.Cap()
				}
			}

			const width = 10
			header := append(table.Row{"row"}, lo.ToAnySlice(lo.Range(width))...)
			tbl := newTable(cmd.OutOrStdout(), header...)
			for i, chunk := range lo.Chunk(vec.Slice(), width) {
				tbl.AppendRow(append(table.Row{i * width}, lo.ToAnySlice(chunk)...))
			}
			tbl.AppendFooter(table.Row{fmt.Sprintf("len %d cap %d", vec.Len(), vec.Cap())})
			tbl.Render()
			return nil
		},
	}
	cmd.Flags().IntVarP(&n, "n", "n", 100, "number of elements")
	return cmd
}

func newTreeCmd(root *rootOptions) *cobra.Command {
	var (
		keys       []int
		erase      []int
		borrowSucc bool
		desc       bool
	)
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Insert and erase keys in a red-black tree and print the colors",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := make([]tree.RBTreeOpt[int, int], 0, 2)
			if borrowSucc {
				opts = append(opts, tree.WithRBTreeRemoveBorrowSucc[int, int]())
			}
			if desc {
				opts = append(opts, tree.WithRBTreeDesc[int, int]())
			}
			t := tree.NewRBTree[int, int](opts...)
			defer t.Release()

			for _, key := range keys {
				if _, _, err := t.Insert(key, key*key); err != nil {
					return err
				}
			}
			for _, key := range erase {
				if _, err := t.Remove(key); err != nil {
					root.logger.Warn("erase skipped", zap.Int("key", key), zap.Error(err))
				}
			}
			if err := multierr.Combine(
				tree.RedViolationValidate(t),
				tree.BlackViolationValidate(t),
				tree.OrderViolationValidate(t),
				tree.SizeValidate(t),
			); err != nil {
				root.logger.ErrorStack(err, "tree invariants broken")
				return err
			}

			tbl := newTable(cmd.OutOrStdout(), "#", "key", "value", "color")
			t.Foreach(func(idx int64, color tree.RBColor, key int, val int) bool {
				tbl.AppendRow(table.Row{idx, key, val, color})
				return true
			})
			rootKey := "-"
			if r := t.Root(); r != nil {
				rootKey = fmt.Sprint(r.Key())
			}
			tbl.AppendFooter(table.Row{"len", t.Len(), "root", rootKey})
			tbl.Render()
			return nil
		},
	}
	cmd.Flags().IntSliceVar(&keys, "keys", defaultKeys, "keys to insert in order")
	cmd.Flags().IntSliceVar(&erase, "erase", nil, "keys to erase after inserting")
	cmd.Flags().BoolVar(&borrowSucc, "borrow-succ", false, "replace a two-child node by its successor")
	cmd.Flags().BoolVar(&desc, "desc", false, "descending order")
	return cmd
}

func newMapCmd(root *rootOptions) *cobra.Command {
	var (
		keys  []int
		bound int
	)
	cmd := &cobra.Command{
		Use:   "map",
		Short: "Fill an ordered map and query its bounds",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := kv.NewOrderedMap[int, string]()
			for _, key := range keys {
				if _, inserted, err := m.Insert(key, fmt.Sprintf("v%d", key)); err != nil {
					return err
				} else if !inserted {
					root.logger.Debug("duplicate key kept", zap.Int("key", key))
				}
			}

			tbl := newTable(cmd.OutOrStdout(), "key", "value")
			for _, e := range m.Entries() {
				tbl.AppendRow(table.Row{e.Key, e.Value})
			}
			lower, upper := m.EqualRange(bound)
			describe := func(it tree.Iterator[int, string]) string {
				if !it.Valid() {
					return "end"
				}
				return fmt.Sprint(it.Key())
			}
			tbl.AppendFooter(table.Row{
				fmt.Sprintf("lower_bound(%d)", bound), describe(lower),
			})
			tbl.AppendFooter(table.Row{
				fmt.Sprintf("upper_bound(%d)", bound), describe(upper),
			})
			tbl.Render()
			return nil
		},
	}
	cmd.Flags().IntSliceVar(&keys, "keys", defaultKeys, "keys to insert")
	cmd.Flags().IntVar(&bound, "bound", 15, "key to search bounds for")
	return cmd
}

func newSetCmd(root *rootOptions) *cobra.Command {
	var keys []int
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Build an ordered set and print its sorted unique keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := kv.NewOrderedSetFrom(keys)
			if err != nil {
				return err
			}
			if dup := len(keys) - int(s.Len()); dup > 0 {
				root.logger.Info("duplicates dropped", zap.Int("count", dup))
			}
			tbl := newTable(cmd.OutOrStdout(), "#", "key")
			for i, key := range s.Keys() {
				tbl.AppendRow(table.Row{i, key})
			}
			tbl.AppendFooter(table.Row{"len", s.Len()})
			tbl.Render()
			return nil
		},
	}
	cmd.Flags().IntSliceVar(&keys, "keys", []int{5, 3, 8, 3, 1, 8, 9}, "keys to insert")
	return cmd
}

func newQueueCmd(root *rootOptions) *cobra.Command {
	var (
		n       int
		ringCap int
	)
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Push 1..n through every vector backed adapter and print the pop order",
		RunE: func(cmd *cobra.Command, args []string) error {
			stack := queue.NewStack[int]()
			fifo := queue.NewQueue[int]()
			pq := queue.NewArrayPriorityQueue[int](queue.WithArrayPriorityQueueCapacity[int](n))
			ring, err := queue.NewRingBuffer[int](ringCap)
			if err != nil {
				return err
			}
			for i := 1; i <= n; i++ {
				if err = multierr.Combine(
					stack.Push(i),
					fifo.Push(i),
					pq.Push(queue.NewPriorityQueueItem(i, int64(i%3))),
					ring.Push(i),
				); err != nil {
					return err
				}
			}

			drain := func(pop func() (int, error)) []int {
				res := make([]int, 0, n)
				for {
					v, err := pop()
					if err != nil {
						return res
					}
					res = append(res, v)
				}
			}
			join := func(vals []int) string {
				return strings.Join(lo.Map(vals, func(v int, _ int) string {
					return fmt.Sprint(v)
				}), " ")
			}
			tbl := newTable(cmd.OutOrStdout(), "container", "pop order")
			tbl.AppendRow(table.Row{"stack", join(drain(stack.Pop))})
			tbl.AppendRow(table.Row{"queue", join(drain(fifo.Pop))})
			tbl.AppendRow(table.Row{"priority queue (i%3)", join(drain(func() (int, error) {
				item, err := pq.Pop()
				if err != nil {
					return 0, err
				}
				return item.Value(), nil
			}))})
			tbl.AppendRow(table.Row{fmt.Sprintf("ring buffer (cap %d)", ringCap), join(drain(ring.Pop))})
			tbl.Render()
			root.logger.Debug("queues drained", zap.Int("n", n))
			return nil
		},
	}
	cmd.Flags().IntVarP(&n, "n", "n", 10, "number of elements")
	cmd.Flags().IntVar(&ringCap, "ring-cap", 4, "ring buffer capacity")
	return cmd
}

func newLRUCmd(root *rootOptions) *cobra.Command {
	var (
		capacity int
		accesses []int
	)
	cmd := &cobra.Command{
		Use:   "lru",
		Short: "Replay key accesses against an LRU cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			evictions := 0
			c, err := kv.NewLRUCache[int, int](capacity, kv.WithLRUCacheEvictCallback(func(key int, _ int) {
				evictions++
				root.logger.Debug("evicted", zap.Int("key", key))
			}))
			if err != nil {
				return err
			}
			tbl := newTable(cmd.OutOrStdout(), "#", "key", "result", "recency")
			for i, key := range accesses {
				result := "hit"
				if _, ok := c.Get(key); !ok {
					result = "miss"
					if err = c.Put(key, key); err != nil {
						return err
					}
				}
				tbl.AppendRow(table.Row{i, key, result, fmt.Sprint(c.Keys())})
			}
			tbl.AppendFooter(table.Row{"evictions", evictions})
			tbl.Render()
			return nil
		},
	}
	cmd.Flags().IntVar(&capacity, "cap", 3, "cache capacity")
	cmd.Flags().IntSliceVar(&accesses, "keys", []int{1, 2, 3, 1, 4, 2, 5, 1}, "keys to access in order")
	return cmd
}
