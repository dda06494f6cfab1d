package postprocess

import (
	"fmt"
	"strings"

	"github.com/swdee/go-facecam/faceapi"
)

// Selection is the rule used to pick one face when several are detected
type Selection int

const (
	// SelectFirst takes the first face in the order the service returned
	// them.  The service does not guarantee a stable order between calls so
	// with several faces in view the annotated face may change between cycles
	SelectFirst Selection = 0
	// SelectLargest takes the face with the largest bounding box area, the
	// earliest face wins on equal areas
	SelectLargest Selection = 1
)

// String returns the name of the selection rule
func (s Selection) String() string {
	switch s {
	case SelectLargest:
		return "largest"
	case SelectFirst:
		return "first"
	default:
		return fmt.Sprintf("Selection(%d)", int(s))
	}
}

// ParseSelection returns the Selection for the given name [first|largest]
func ParseSelection(name string) (Selection, error) {

	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "first":
		return SelectFirst, nil
	case "largest":
		return SelectLargest, nil
	}

	return SelectFirst, fmt.Errorf("unknown face selection: %s", name)
}

// SelectFace picks a single face from the detected faces using the selection
// rule.  Returns false if there are no faces
func SelectFace(faces []faceapi.Face, sel Selection) (faceapi.Face, bool) {

	if len(faces) == 0 {
		return faceapi.Face{}, false
	}

	if sel != SelectLargest {
		return faces[0], true
	}

	best := 0
	bestArea := BoxFromRectangle(faces[0].Rectangle).Area()

	for i := 1; i < len(faces); i++ {
		area := BoxFromRectangle(faces[i].Rectangle).Area()

		if area > bestArea {
			best = i
			bestArea = area
		}
	}

	return faces[best], true
}
