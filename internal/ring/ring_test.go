package ring

import (
	"bytes"
	"math/rand"
	"sync"
	"testing"
)

func TestNewRejectsNonPowerOfTwo(t *testing.T) {
	if _, err := New(1000); err != ErrCapacityNotPowerOfTwo {
		t.Fatalf("expected ErrCapacityNotPowerOfTwo, got %v", err)
	}
	if _, err := New(1024); err != nil {
		t.Fatalf("expected success for power-of-two capacity, got %v", err)
	}
}

func TestPushFullThenDrain(t *testing.T) {
	r, err := New(8)
	if err != nil {
		t.Fatal(err)
	}

	if !r.Push([]byte{1, 2, 3, 4, 5, 6, 7, 8}) {
		t.Fatal("expected push of 8 bytes into capacity-8 ring to succeed")
	}
	if r.Push([]byte{9}) {
		t.Fatal("expected push into full ring to fail")
	}

	dst := make([]byte, 16)
	n := r.Pop(dst)
	if n != 8 || !bytes.Equal(dst[:n], []byte{1, 2, 3, 4, 5, 6, 7, 8}) {
		t.Fatalf("unexpected pop result: n=%d data=%v", n, dst[:n])
	}

	if !r.Push([]byte{9}) {
		t.Fatal("expected push to succeed after drain")
	}
	n = r.Pop(dst)
	if n != 1 || dst[0] != 9 {
		t.Fatalf("unexpected pop result: n=%d data=%v", n, dst[:n])
	}
}

func TestPushFailureLeavesRingUnchanged(t *testing.T) {
	r, _ := New(4)
	r.Push([]byte{1, 2})

	if r.Push([]byte{3, 4, 5}) {
		t.Fatal("expected push exceeding capacity to fail")
	}

	dst := make([]byte, 4)
	n := r.Pop(dst)
	if n != 2 || !bytes.Equal(dst[:n], []byte{1, 2}) {
		t.Fatalf("ring was mutated by a failed push: n=%d data=%v", n, dst[:n])
	}
}

func TestWrapAround(t *testing.T) {
	r, _ := New(8)

	six := []byte{1, 2, 3, 4, 5, 6}
	if !r.Push(six) {
		t.Fatal("push failed")
	}
	dst := make([]byte, 6)
	if n := r.Pop(dst); n != 6 {
		t.Fatalf("pop: expected 6, got %d", n)
	}

	// head and tail are now both at 6; this push crosses the physical
	// end of an 8-byte buffer.
	more := []byte{7, 8, 9, 10, 11, 12}
	if !r.Push(more) {
		t.Fatal("wrap-around push failed")
	}
	dst2 := make([]byte, 6)
	if n := r.Pop(dst2); n != 6 || !bytes.Equal(dst2, more) {
		t.Fatalf("wrap-around pop mismatch: n=%d data=%v", n, dst2)
	}
}

func TestPopAdvancesTailByExactlyN(t *testing.T) {
	r, _ := New(16)
	r.Push([]byte{1, 2, 3, 4, 5})

	before := r.tail.Load()
	dst := make([]byte, 3)
	n := r.Pop(dst)
	after := r.tail.Load()

	if uint64(n) != after-before {
		t.Fatalf("tail advanced by %d, pop returned %d", after-before, n)
	}
}

func TestPopOnEmptyReturnsZero(t *testing.T) {
	r, _ := New(8)
	dst := make([]byte, 4)
	if n := r.Pop(dst); n != 0 {
		t.Fatalf("expected 0 from empty ring, got %d", n)
	}
}

// TestWrapAroundLargerThanCapacity pushes 1.5x capacity through in
// boundary-crossing chunks and checks the drained stream against a linear
// reference, per the wrap-around property in spec §8.
func TestWrapAroundLargerThanCapacity(t *testing.T) {
	const capacity = 64
	r, _ := New(capacity)

	total := capacity + capacity/2
	source := make([]byte, total)
	for i := range source {
		source[i] = byte(i)
	}

	var drained []byte
	chunk := 5
	written, read := 0, 0
	for read < total {
		if written < total {
			end := written + chunk
			if end > total {
				end = total
			}
			if r.Push(source[written:end]) {
				written = end
			}
		}
		dst := make([]byte, chunk)
		n := r.Pop(dst)
		if n > 0 {
			drained = append(drained, dst[:n]...)
			read += n
		}
	}

	if !bytes.Equal(drained, source) {
		t.Fatalf("drained stream does not match reference")
	}
}

// TestConcurrentProducerConsumer exercises arbitrary interleavings of one
// producer and one consumer with arbitrary chunk sizes and checks that the
// consumer's observed stream equals the concatenation of everything the
// producer wrote, with no loss, duplication, or reordering.
func TestConcurrentProducerConsumer(t *testing.T) {
	r, _ := New(1 << 12)

	const total = 500_000
	source := make([]byte, total)
	rand.New(rand.NewSource(1)).Read(source)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		producerRng := rand.New(rand.NewSource(2))
		written := 0
		for written < total {
			chunk := 1 + producerRng.Intn(300)
			end := written + chunk
			if end > total {
				end = total
			}
			for !r.Push(source[written:end]) {
			}
			written = end
		}
	}()

	var got []byte
	go func() {
		defer wg.Done()
		consumerRng := rand.New(rand.NewSource(3))
		dst := make([]byte, 300)
		for len(got) < total {
			n := r.Pop(dst[:1+consumerRng.Intn(300)])
			if n > 0 {
				got = append(got, dst[:n]...)
			}
		}
	}()

	wg.Wait()

	if !bytes.Equal(got, source) {
		t.Fatal("consumer stream diverges from producer stream")
	}
}
