package math

import (
	"math"
	"testing"
)

func TestVec3Length(t *testing.T) {
	tests := []struct {
		v    Vec3
		want float32
	}{
		{Vec3{}, 0},
		{One(), float32(math.Sqrt(3))},
		{Vec3{X: 3, Z: 4}, 5},
	}
	for _, tt := range tests {
		if got := tt.v.Length(); got != tt.want {
			t.Errorf("%v.Length() = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestWidenToVec4(t *testing.T) {
	tests := []struct {
		name string
		got  Vec4
		want Vec4
	}{
		{"vec2", Vec2{1, 2}.Vec4(), Vec4{1, 2, 0, 0}},
		{"vec3", Vec3{1, 2, 3}.Vec4(), Vec4{1, 2, 3, 0}},
		{"quat", Quat{X: 1, Y: 2, Z: 3, W: 4}.Vec4(), Vec4{1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestIsFinite(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	if !(Vec3{1, 2, 3}).IsFinite() {
		t.Error("finite Vec3 reported as non-finite")
	}
	if (Vec3{1, nan, 3}).IsFinite() {
		t.Error("Vec3 with NaN reported as finite")
	}
	if (Vec2{inf, 0}).IsFinite() {
		t.Error("Vec2 with Inf reported as finite")
	}
	if (Vec4{0, 0, 0, nan}).IsFinite() {
		t.Error("Vec4 with NaN reported as finite")
	}
}
