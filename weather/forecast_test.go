package weather

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSeverity(t *testing.T) {
	tests := []struct {
		knots float64
		want  float64
	}{
		{0, 1},
		{6.9, 1},
		{7, 2},
		{12, 3},
		{18, 4},
		{25, 5},
		{30, 6},
		{34, 7},
		{60, 7},
	}
	for _, tt := range tests {
		if got := Severity(tt.knots); got != tt.want {
			t.Errorf("Severity(%f) = %f; want %f", tt.knots, got, tt.want)
		}
	}
}

func TestMeanSpeed(t *testing.T) {
	f := Forecast{U: []float64{3, 0}, V: []float64{4, 0}}
	if got := f.MeanSpeed(); math.Round(got*1000) != 4860 {
		t.Errorf("MeanSpeed() = %f; want 4.860", got)
	}
	if got := (&Forecast{}).MeanSpeed(); got != 0 {
		t.Errorf("MeanSpeed() of empty forecast = %f; want 0", got)
	}
}

func TestLoadWithoutWind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.grb2")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Errorf("Load(empty) = nil; want an error")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.grb2")); err == nil {
		t.Errorf("Load(missing) = nil; want an error")
	}
}

func TestProviderNotConfigured(t *testing.T) {
	p := NewProvider("")
	if _, err := p.Current(); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Current() = %v; want ErrNotConfigured", err)
	}
	if err := p.Reload(); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Reload() = %v; want ErrNotConfigured", err)
	}
	p.Watch(10)
	p.Stop()
}

func TestProviderBadFile(t *testing.T) {
	p := NewProvider(filepath.Join(t.TempDir(), "missing.grb2"))
	if _, err := p.Current(); err == nil {
		t.Errorf("Current() with a missing file = nil; want an error")
	}
}

func TestProviderReloadOnModTime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wind.grb2")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}

	p := NewProvider(path)
	loaded := testGrid()
	p.forecast = loaded
	p.modTime = info.ModTime()

	if err := p.Reload(); err != nil || p.forecast != loaded {
		t.Fatalf("Reload() of an unchanged file = %v, forecast replaced %t; want nil, kept", err, p.forecast != loaded)
	}

	modified := info.ModTime().Add(time.Hour)
	if err := os.Chtimes(path, modified, modified); err != nil {
		t.Fatal(err)
	}
	if err := p.Reload(); err == nil {
		t.Errorf("Reload() of a modified file without wind = nil; want the load error")
	}
	if p.forecast != loaded || !p.modTime.Equal(info.ModTime()) {
		t.Errorf("failed Reload() replaced the forecast")
	}

	preset, err := p.Current()
	if err != nil || preset.Speed != loaded.MeanSpeed() {
		t.Errorf("Current() after a failed reload = %+v, %v; want the previous forecast", preset, err)
	}
}
