package scalar

import (
	"testing"
)

func BenchmarkFixed16Mul(b *testing.B) {
	x, y := Fixed16{}.FromFloat(1.2345), Fixed16{}.FromFloat(-6.789)

	for b.Loop() {
		_ = x.Mul(y)
	}
}

func BenchmarkFixed16Div(b *testing.B) {
	x, y := Fixed16{}.FromFloat(1.2345), Fixed16{}.FromFloat(-6.789)

	for b.Loop() {
		_ = x.Div(y)
	}
}

func BenchmarkFixed16Recip(b *testing.B) {
	x := Fixed16{}.FromFloat(6.789)

	for b.Loop() {
		_ = x.Recip()
	}
}

func BenchmarkFixed16Sqrt(b *testing.B) {
	x := Fixed16{}.FromFloat(123.45)

	for b.Loop() {
		_ = x.Sqrt()
	}
}

func BenchmarkFixed16SinCos(b *testing.B) {
	x := Fixed16{}.FromFloat(2.5)

	for b.Loop() {
		_, _ = x.SinCos()
	}
}

func BenchmarkFixed16Atan2(b *testing.B) {
	y, x := Fixed16{}.FromFloat(0.3), Fixed16{}.FromFloat(-0.7)

	for b.Loop() {
		_ = y.Atan2(x)
	}
}

func BenchmarkFloatSinCos(b *testing.B) {
	x := F(2.5)

	for b.Loop() {
		_, _ = x.SinCos()
	}
}
