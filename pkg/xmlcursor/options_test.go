package xmlcursor

import "testing"

func TestJoinOptionsLastWins(t *testing.T) {
	merged := JoinOptions(MaxDepth(5), EmitComments(false), MaxDepth(9))
	if !merged.maxDepthSet || merged.maxDepth != 9 {
		t.Fatalf("maxDepth = %d (set %v), want 9", merged.maxDepth, merged.maxDepthSet)
	}
	if !merged.emitCommentsSet || merged.emitComments {
		t.Fatalf("emitComments = %v (set %v), want false", merged.emitComments, merged.emitCommentsSet)
	}
	if merged.emitPISet {
		t.Fatalf("emitPI set without any EmitPI option")
	}
}

func TestTokenizerOptionsForwarding(t *testing.T) {
	opts := JoinOptions(MaxTokenSize(100), MaxAttrs(4))
	forwarded := opts.tokenizerOptions()
	if len(forwarded) != 2 {
		t.Fatalf("forwarded option count = %d, want 2", len(forwarded))
	}
	if got := len(JoinOptions(EmitComments(false)).tokenizerOptions()); got != 0 {
		t.Fatalf("forwarded option count = %d, want 0", got)
	}
}
