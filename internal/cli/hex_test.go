package cli

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/travellermap/hexmap/pkg/astrometrics"
	"github.com/travellermap/hexmap/pkg/errors"
)

func TestParseLocation(t *testing.T) {
	isolate(t)
	c := New(io.Discard, LogWarn)
	c.scenePath = testScene

	tests := []struct {
		in   string
		want astrometrics.Location
	}{
		{"0,0:0101", astrometrics.Location{Sector: astrometrics.Point{X: 0, Y: 0}, Hex: astrometrics.Hex{X: 1, Y: 1}}},
		{"-1,2:3240", astrometrics.Location{Sector: astrometrics.Point{X: -1, Y: 2}, Hex: astrometrics.Hex{X: 32, Y: 40}}},
		{"Core:0140", astrometrics.Location{Sector: astrometrics.Point{X: 0, Y: 0}, Hex: astrometrics.Hex{X: 1, Y: 40}}},
		{"Trailing:0101", astrometrics.Location{Sector: astrometrics.Point{X: 1, Y: 0}, Hex: astrometrics.Hex{X: 1, Y: 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := c.parseLocation(context.Background(), tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseLocationErrors(t *testing.T) {
	isolate(t)
	c := New(io.Discard, LogWarn)
	c.scenePath = testScene

	tests := []struct {
		in   string
		code errors.Code
	}{
		{"0101", errors.ErrCodeInvalidInput},
		{"0,0:01", errors.ErrCodeInvalidInput},
		{"0,0:3341", errors.ErrCodeInvalidInput},
		{"0,0:0000", errors.ErrCodeInvalidInput},
		{"Nowhere:0101", errors.ErrCodeSectorNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := c.parseLocation(context.Background(), tt.in)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestParseLocationNeedsSceneForNames(t *testing.T) {
	isolate(t)
	c := New(io.Discard, LogWarn)
	if _, err := c.parseLocation(context.Background(), "0,0:0101"); err != nil {
		t.Errorf("numeric sector without scene: %v", err)
	}
	if _, err := c.parseLocation(context.Background(), "Core:0101"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("named sector without scene: err = %v", err)
	}
}

func TestHexDistanceCommand(t *testing.T) {
	isolate(t)
	tests := []struct {
		a, b string
		want string
	}{
		{"0,0:0101", "0,0:0101", "0"},
		{"0,0:0101", "0,0:0103", "2"},
		{"0,0:3201", "1,0:0101", "1"},
	}
	for _, tt := range tests {
		out, err := execute(t, "hex", "distance", tt.a, tt.b)
		if err != nil {
			t.Fatal(err)
		}
		if got := strings.TrimSpace(out); got != tt.want {
			t.Errorf("distance(%s, %s) = %s, want %s", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestHexLocateRejectsNonNumbers(t *testing.T) {
	isolate(t)
	if _, err := execute(t, "hex", "locate", "a", "1"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v", err)
	}
}
