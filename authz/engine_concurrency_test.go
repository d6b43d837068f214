package authz

import (
	"context"
	"testing"

	"golang.org/x/sync/errgroup"

	"homeflow/auth"
)

// The engine holds no mutable state: concurrent decisions over unchanged
// external state must all agree with the sequential result.
func TestDecide_Concurrent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	realtor := f.addUser(t, 10, auth.RoleRealtor)
	buyer := f.addUser(t, 11, auth.RoleBuyer)

	want := map[string]Decision{
		"realtor": f.engine.Decide(ctx, opRealtor, realtor, nil),
		"buyer":   f.engine.Decide(ctx, opRealtor, buyer, nil),
		"public":  f.engine.Decide(ctx, opPublic, "", nil),
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < 32; i++ {
		g.Go(func() error {
			got := map[string]Decision{
				"realtor": f.engine.Decide(gctx, opRealtor, realtor, nil),
				"buyer":   f.engine.Decide(gctx, opRealtor, buyer, nil),
				"public":  f.engine.Decide(gctx, opPublic, "", nil),
			}
			for name, expected := range want {
				if got[name] != expected {
					t.Errorf("%s: expected %+v got %+v", name, expected, got[name])
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent decide: %v", err)
	}
}
