package facecam

import (
	"errors"
	"sync"
	"testing"

	"gocv.io/x/gocv"
)

// solidMat returns a 3 channel image filled with a single gray value
func solidMat(width, height int, value uint8) gocv.Mat {
	v := float64(value)
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(v, v, v, 0),
		height, width, gocv.MatTypeCV8UC3)
}

func TestSlotStoreSnapshot(t *testing.T) {

	initial := solidMat(8, 6, 10)
	defer initial.Close()

	slot := NewSlot(initial)
	defer slot.Close()

	dst := gocv.NewMat()
	defer dst.Close()

	if err := slot.Snapshot(&dst); err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	if dst.GetUCharAt3(0, 0, 0) != 10 {
		t.Errorf("expected initial frame value 10, got %d", dst.GetUCharAt3(0, 0, 0))
	}

	next := solidMat(8, 6, 200)
	defer next.Close()

	if err := slot.Store(next); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	// mutating the stored source must not affect the slot copy
	next.SetUCharAt3(0, 0, 0, 1)

	if err := slot.Snapshot(&dst); err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	if dst.GetUCharAt3(0, 0, 0) != 200 {
		t.Errorf("expected stored frame value 200, got %d", dst.GetUCharAt3(0, 0, 0))
	}
}

func TestSlotStats(t *testing.T) {

	initial := solidMat(4, 4, 0)
	defer initial.Close()

	slot := NewSlot(initial)
	defer slot.Close()

	frame := solidMat(4, 4, 50)
	defer frame.Close()

	dst := gocv.NewMat()
	defer dst.Close()

	// three writes with no read in between drops two frames
	for i := 0; i < 3; i++ {
		slot.Store(frame)
	}

	slot.Snapshot(&dst)
	slot.Store(frame)
	slot.Snapshot(&dst)

	stats := slot.Stats()

	if stats.Stores != 4 || stats.Snapshots != 2 || stats.Drops != 2 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestSlotEmptyStore(t *testing.T) {

	initial := solidMat(4, 4, 0)
	defer initial.Close()

	slot := NewSlot(initial)
	defer slot.Close()

	empty := gocv.NewMat()
	defer empty.Close()

	if err := slot.Store(empty); err == nil {
		t.Errorf("expected error storing empty frame")
	}
}

func TestSlotClosed(t *testing.T) {

	initial := solidMat(4, 4, 0)
	defer initial.Close()

	slot := NewSlot(initial)
	slot.Close()

	dst := gocv.NewMat()
	defer dst.Close()

	if err := slot.Snapshot(&dst); !errors.Is(err, ErrSlotClosed) {
		t.Errorf("expected ErrSlotClosed from Snapshot, got %v", err)
	}

	if err := slot.Store(initial); !errors.Is(err, ErrSlotClosed) {
		t.Errorf("expected ErrSlotClosed from Store, got %v", err)
	}

	if err := slot.Close(); err != nil {
		t.Errorf("expected second Close to be a no-op, got %v", err)
	}
}

func TestSlotConcurrentAccess(t *testing.T) {

	initial := solidMat(64, 48, 0)
	defer initial.Close()

	slot := NewSlot(initial)
	defer slot.Close()

	const rounds = 200

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()

		for i := 0; i < rounds; i++ {
			frame := solidMat(64, 48, uint8(i%250+1))
			slot.Store(frame)
			frame.Close()
		}
	}()

	torn := make(chan string, 1)

	go func() {
		defer wg.Done()

		dst := gocv.NewMat()
		defer dst.Close()

		for i := 0; i < rounds; i++ {
			if err := slot.Snapshot(&dst); err != nil {
				continue
			}

			// every frame written is a single value so first and last pixel
			// must agree
			first := dst.GetUCharAt3(0, 0, 0)
			last := dst.GetUCharAt3(47, 63, 2)

			if first != last {
				select {
				case torn <- "torn frame observed":
				default:
				}
				return
			}
		}
	}()

	wg.Wait()

	select {
	case msg := <-torn:
		t.Fatal(msg)
	default:
	}
}
