package postprocess

import (
	"image"
	"testing"

	"github.com/swdee/go-facecam/faceapi"
)

func TestBoxGeometry(t *testing.T) {

	box := BoxFromRectangle(faceapi.Rectangle{Left: 10, Top: 20, Width: 100, Height: 150})
	margin := 100

	if box.Width() != 100 || box.Height() != 150 || box.Area() != 15000 {
		t.Errorf("unexpected dimensions: w=%d h=%d area=%d", box.Width(), box.Height(), box.Area())
	}

	if got := box.BorderRect(margin); got != image.Rect(10, 20, 110, 170+margin) {
		t.Errorf("unexpected border rect: %v", got)
	}

	if got := box.LabelRect(margin); got != image.Rect(10, 170, 110, 170+margin) {
		t.Errorf("unexpected label rect: %v", got)
	}
}

func TestSelectFace(t *testing.T) {

	faces := []faceapi.Face{
		{FaceID: "small", Rectangle: faceapi.Rectangle{Width: 10, Height: 10}},
		{FaceID: "big", Rectangle: faceapi.Rectangle{Width: 50, Height: 50}},
		{FaceID: "big-too", Rectangle: faceapi.Rectangle{Width: 25, Height: 100}},
	}

	tests := []struct {
		sel      Selection
		expected string
	}{
		{SelectFirst, "small"},
		{SelectLargest, "big"},
	}

	for _, tc := range tests {
		face, ok := SelectFace(faces, tc.sel)

		if !ok {
			t.Fatalf("%s: expected a face", tc.sel)
		}

		if face.FaceID != tc.expected {
			t.Errorf("%s: expected %s, got %s", tc.sel, tc.expected, face.FaceID)
		}
	}

	if _, ok := SelectFace(nil, SelectLargest); ok {
		t.Errorf("expected no face from empty input")
	}
}

func TestParseSelection(t *testing.T) {

	for name, expected := range map[string]Selection{
		"":        SelectFirst,
		"first":   SelectFirst,
		"Largest": SelectLargest,
	} {
		sel, err := ParseSelection(name)

		if err != nil || sel != expected {
			t.Errorf("ParseSelection(%q): expected %s, got %s (err %v)", name, expected, sel, err)
		}
	}

	if _, err := ParseSelection("random"); err == nil {
		t.Errorf("expected error for unknown selection")
	}
}
