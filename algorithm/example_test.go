package algorithm_test

import (
	"context"
	"fmt"
	"log"

	"github.com/born-ml/fold/algorithm"
	"github.com/born-ml/fold/backend/threaded"
	"github.com/born-ml/fold/execution"
)

func newPolicy() (execution.Policy, func()) {
	c, err := execution.NewDefaultContext(threaded.New(threaded.DefaultConfig()), execution.Blocking)
	if err != nil {
		log.Fatal(err)
	}
	ex, err := execution.NewExecutor(c, execution.DefaultConfig())
	if err != nil {
		log.Fatal(err)
	}
	return execution.MakeParallelPolicy(ex), c.Close
}

func ExampleReduce() {
	p, done := newPolicy()
	defer done()

	data := make(algorithm.Slice[int], 100)
	for i := range data {
		data[i] = i + 1
	}
	total, err := algorithm.Reduce(context.Background(), p, data, 0, func(a, b int) int { return a + b })
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(total)
	// Output: 5050
}

func ExampleForEach() {
	p, done := newPolicy()
	defer done()

	data := algorithm.Slice[int]{1, 2, 3, 4}
	if err := algorithm.ForEach(context.Background(), p, data, func(v int) int { return v * 2 }); err != nil {
		log.Fatal(err)
	}
	fmt.Println(data)
	// Output: [2 4 6 8]
}

func ExampleTransformReduce() {
	p, done := newPolicy()
	defer done()

	words := algorithm.Slice[string]{"fold", "reduce", "map"}
	letters, err := algorithm.TransformReduce(context.Background(), p, words, 0,
		func(a, b int) int { return a + b },
		func(s string) int { return len(s) })
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(letters)
	// Output: 13
}
