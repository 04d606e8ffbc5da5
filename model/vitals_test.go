package model

import "testing"

func TestVitalsTakeDamage(t *testing.T) {
	t.Run("exact kill", func(t *testing.T) {
		v := NewVitals(100)
		if v.TakeDamage(99) {
			t.Fatal("99 damage reported a kill")
		}
		if !v.TakeDamage(1) {
			t.Fatal("damage to exactly zero did not report a kill")
		}
		if v.Alive || v.Health != 0 {
			t.Errorf("got health %d alive %v, want 0 false", v.Health, v.Alive)
		}
	})

	t.Run("overkill clamps", func(t *testing.T) {
		v := NewVitals(10)
		v.TakeDamage(25)
		if v.Health != 0 {
			t.Errorf("health = %d, want 0", v.Health)
		}
	})

	t.Run("dead stays dead", func(t *testing.T) {
		v := NewVitals(10)
		v.TakeDamage(10)
		if v.TakeDamage(5) {
			t.Error("second kill reported")
		}
		if v.Health != 0 {
			t.Errorf("health = %d, want 0", v.Health)
		}
	})
}

func TestVitalsSetHealthAndRevive(t *testing.T) {
	v := NewVitals(100)
	v.SetHealth(250)
	if v.Health != 100 {
		t.Errorf("SetHealth(250) = %d, want 100", v.Health)
	}
	v.SetHealth(-3)
	if v.Health != 0 {
		t.Errorf("SetHealth(-3) = %d, want 0", v.Health)
	}

	v.TakeDamage(1)
	v.Revive()
	if !v.Alive || v.Health != 100 {
		t.Errorf("after revive got %d %v", v.Health, v.Alive)
	}
}
