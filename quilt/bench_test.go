package quilt_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/quilt/quilt"
)

func BenchmarkRun_SubBlockRow(b *testing.B) {
	pattern := texture(b, 20, 20, 1)
	s, err := quilt.New(quilt.WithSize(40, 80), quilt.WithPatchFactor(4))
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Run(context.Background(), pattern); err != nil {
			b.Fatal(err)
		}
	}
}
