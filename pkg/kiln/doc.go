// Package kiln provides an embeddable API for training the bundled
// classifier and capturing a pinned manifest of the training environment.
//
// Quick start:
//
//	report, err := kiln.Train(
//	    kiln.WithArtifactPath("model.yaml"),
//	    kiln.WithSeed(42),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	pins, err := kiln.Capture(
//	    kiln.WithArtifactPath(report.ArtifactPath),
//	    kiln.WithManifestPath("requirements.txt"),
//	)
//
// Train always produces a fresh artifact; Capture refuses to emit a manifest
// unless the artifact it describes exists and verifies.
package kiln
