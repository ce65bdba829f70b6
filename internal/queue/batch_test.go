package queue_test

import (
	"errors"
	"testing"

	"movconv/internal/queue"
)

func TestBatchCounts(t *testing.T) {
	batch := queue.NewBatch("run", "/in", "/out")
	if !batch.Empty() || batch.Total() != 0 {
		t.Fatalf("expected empty batch, got %d jobs", batch.Total())
	}

	ok := queue.NewJob("/in/a.mov", "/out")
	_ = ok.Start()
	_ = ok.Succeed()
	ok.DeleteErr = errors.New("permission denied")

	bad := queue.NewJob("/in/b.mov", "/out")
	_ = bad.Start()
	_ = bad.Fail("encoder exited with error", "invalid data")

	batch.Add(ok)
	batch.Add(bad)
	batch.Finish()

	if batch.Total() != 2 || batch.Succeeded() != 1 || batch.Failed() != 1 {
		t.Fatalf("unexpected counts total=%d ok=%d failed=%d", batch.Total(), batch.Succeeded(), batch.Failed())
	}
	if failures := batch.Failures(); len(failures) != 1 || failures[0] != bad {
		t.Fatalf("unexpected failures %+v", failures)
	}
	if deletes := batch.DeleteFailures(); len(deletes) != 1 || deletes[0] != ok {
		t.Fatalf("unexpected delete failures %+v", deletes)
	}
	if ok.Status != queue.StatusSucceeded {
		t.Fatal("delete failure must not change job status")
	}
	if batch.Duration() < 0 {
		t.Fatalf("negative batch duration %v", batch.Duration())
	}
}

func TestNilBatchHelpers(t *testing.T) {
	var batch *queue.Batch
	if batch.Total() != 0 || !batch.Empty() || batch.Failed() != 0 || batch.Failures() != nil {
		t.Fatal("nil batch helpers should report an empty batch")
	}
}
