package lang_test

import (
	"context"
	"fmt"
	"os"

	"github.com/ardnew/specialize/lang"
)

func Example() {
	ctx := context.Background()

	store := lang.NewStore()
	_ = store.ParseString(ctx, `
base:
  a.a = "foo"
  a.b = 12

env (base):
  a.b = 19
  a.c = "bar"
`, lang.WithFile("example.env"))

	if err := store.Check(ctx).Err(); err != nil {
		fmt.Println(err)

		return
	}

	_ = lang.Encode(ctx, os.Stdout, store.Resolve(ctx, "env"), lang.EncodingJSON, 0)
	// Output:
	// {"a":{"a":"foo","b":19,"c":"bar"}}
}

func ExampleStore_Check() {
	ctx := context.Background()

	store := lang.NewStore()
	_ = store.ParseString(ctx, "env (env2):\n  a = 1\nenv2 (env):\n  b = 2\n", lang.WithFile("cycle.env"))

	for _, d := range store.Check(ctx).All() {
		fmt.Println(d)
	}
	// Output:
	// cycle.env:3: Environment "env2" has circular parent environment "env"
	// cycle.env:1: Environment "env" has circular parent environment "env2"
}
