package core

import "testing"

// TestChunkLabels tests the ChunkLabels function
func TestChunkLabels(t *testing.T) {
	in := []string{"1", "2", "Fizz", "4", "Buzz"}
	chunks := ChunkLabels(in, 2)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if len(chunks[0]) != 2 || chunks[0][0] != "1" || chunks[0][1] != "2" {
		t.Fatalf("unexpected first chunk")
	}
	if len(chunks[2]) != 1 || chunks[2][0] != "Buzz" {
		t.Fatalf("unexpected last chunk")
	}
}

func TestChunkLabelsNoSize(t *testing.T) {
	in := []string{"a", "b"}
	chunks := ChunkLabels(in, 0)
	if len(chunks) != 1 || len(chunks[0]) != 2 {
		t.Fatalf("expected single chunk, got %v", chunks)
	}
}
