// Package testing drives shard documents on the headless platform.
//
// # Quick Start
//
// Create a tester, load a document, and make assertions:
//
//	func TestCard(t *testing.T) {
//	    tester := shardtest.NewTesterWithT(t)
//	    if err := tester.LoadJSON(`{"kind": "text", "props": {"text": "Buy"}}`); err != nil {
//	        t.Fatal(err)
//	    }
//
//	    view := tester.Find(shardtest.ByText("Buy")).First()
//	    if view.Frame.Width() == 0 {
//	        t.Error("expected text to have a width")
//	    }
//	}
//
// # Images
//
// The tester installs a FakeLoader. Complete a load, then pump so the
// requested layout runs:
//
//	tester.Loader().Complete("https://example.com/a.png", 64, 48)
//	tester.Pump()
//
// # Snapshot Testing
//
// Compare the materialized view tree against a golden file:
//
//	tester.CaptureSnapshot().MatchesFile(t, "testdata/card.snapshot")
//
// Update snapshots with:
//
//	SHARD_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import shardtest "github.com/go-drift/shard/pkg/testing"
package testing
