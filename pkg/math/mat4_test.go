package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
	if !m.IsIdentity() {
		t.Error("IsIdentity() = false for Identity()")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	if result != m {
		t.Errorf("M * I should equal M: got %v, want %v", result, m)
	}
}

func TestFromRows(t *testing.T) {
	rows := [4][4]float32{
		{1, 0, 0, 5},
		{0, 1, 0, 10},
		{0, 0, 1, 15},
		{0, 0, 0, 1},
	}
	m := FromRows(rows)

	if m != Translate(5, 10, 15) {
		t.Errorf("FromRows translation: got %v, want %v", m, Translate(5, 10, 15))
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(10, 20, 30)
	result := m.TransformPoint([3]float32{1, 2, 3})

	expected := [3]float32{11, 22, 33}
	if result != expected {
		t.Errorf("TransformPoint: got %v, want %v", result, expected)
	}
}

func TestTransformVec3ScaleThenTranslate(t *testing.T) {
	m := Translate(1, 1, 1).Mul(Scale(2, 3, 4))
	got := m.TransformVec3(Vec3{1, 1, 1})

	want := Vec3{3, 4, 5}
	if got != want {
		t.Errorf("TransformVec3: got %v, want %v", got, want)
	}
}

func TestRotateZ90(t *testing.T) {
	m := RotateZ(float32(math.Pi / 2))
	got := m.TransformVec3(Vec3{1, 0, 0})

	// (1,0,0) rotated 90 degrees about Z lands on (0,1,0)
	if abs(got.X) > 0.001 || abs(got.Y-1) > 0.001 || abs(got.Z) > 0.001 {
		t.Errorf("RotateZ 90: got %v, want (0, 1, 0)", got)
	}
}

func TestRotateX90(t *testing.T) {
	m := RotateX(float32(math.Pi / 2))
	got := m.TransformVec3(Vec3{0, 1, 0})

	if abs(got.X) > 0.001 || abs(got.Y) > 0.001 || abs(got.Z-1) > 0.001 {
		t.Errorf("RotateX 90: got %v, want (0, 0, 1)", got)
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(float32(math.Pi / 2))
	got := m.TransformVec3(Vec3{1, 0, 0})

	if abs(got.X) > 0.001 || abs(got.Y) > 0.001 || abs(got.Z+1) > 0.001 {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", got)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
