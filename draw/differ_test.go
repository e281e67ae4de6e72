package draw

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/vexelgl/vexel"
	"github.com/vexelgl/vexel/batch"
	"github.com/vexelgl/vexel/internal/gldriver"
	"github.com/vexelgl/vexel/texture"
)

func newTestDiffer(t *testing.T) (*gldriver.Recorder, *texture.Cache, *Differ) {
	t.Helper()
	rec := gldriver.NewRecorder()
	cache := texture.NewCache(rec)
	atlas := NewAtlas(rec, 800, 600)
	shaders, err := NewShaderSet(rec)
	if err != nil {
		t.Fatal(err)
	}
	return rec, cache, NewDiffer(rec, shaders, cache, atlas, 800, 600)
}

func TestApplyChangeIdenticalIsFree(t *testing.T) {
	rec, _, df := newTestDiffer(t)
	p := NewParams()
	df.ApplyAll(p, batch.UVUint16)

	rec.Reset()
	df.ApplyChange(p, batch.UVUint16)
	if got := rec.Len(); got != 0 {
		t.Errorf("identical params issued %d GPU calls, want 0:\n%v", got, rec.Calls)
	}
}

func TestApplyChangeTransformBitExact(t *testing.T) {
	rec, _, df := newTestDiffer(t)
	p := NewParams()
	p.Mul(mgl32.Translate3D(1, 2, 0))
	df.ApplyAll(p, batch.UVUint16)

	// The same matrix built the same way is bit-identical: no upload.
	q := NewParams()
	q.Mul(mgl32.Translate3D(1, 2, 0))
	rec.Reset()
	df.ApplyChange(q, batch.UVUint16)
	if got := rec.Len(); got != 0 {
		t.Fatalf("bit-identical transform issued %d calls, want 0", got)
	}

	// The tiniest representable difference forces a re-upload.
	q.Transform[12] = nextAfter(q.Transform[12])
	df.ApplyChange(q, batch.UVUint16)
	if got := rec.Count("UniformMatrix4"); got != 1 {
		t.Errorf("UniformMatrix4 calls = %d, want 1", got)
	}
	if got := rec.Len(); got != 1 {
		t.Errorf("total calls = %d, want 1", got)
	}
}

func nextAfter(v float32) float32 {
	return v + 0.000001
}

func TestApplyChangeTextureBind(t *testing.T) {
	rec, cache, df := newTestDiffer(t)
	key := cache.Register(texture.Generated{
		Name: "noise", Width: 8, Height: 8,
		At: func(x, y int) vexel.Color { return vexel.White },
	})
	cache.RunPopulators()

	p := NewParams()
	df.ApplyAll(p, batch.UVUint16)

	rec.Reset()
	p.UseTexture(key)
	df.ApplyChange(p, batch.UVUint16)
	if got := rec.Count("BindTexture"); got != 1 {
		t.Errorf("BindTexture calls = %d, want 1", got)
	}
	// UV mapping follows the texture.
	if got := rec.Count("Uniform4f"); got != 1 {
		t.Errorf("Uniform4f calls = %d, want 1 (TEX_TRANSFORM)", got)
	}
}

func TestApplyChangePushPopFlipsEquation(t *testing.T) {
	rec, _, df := newTestDiffer(t)
	p := NewParams()
	p.PushMask()
	df.ApplyAll(p, batch.UVUint16)

	rec.Reset()
	p.PopMask()
	df.ApplyChange(p, batch.UVUint16)
	if got := rec.Len(); got != 1 {
		t.Fatalf("push-to-pop issued %d calls, want 1:\n%v", got, rec.Calls)
	}
	calls := rec.CallsFor("BlendEquation")
	if len(calls) != 1 || calls[0].Args[0] != gputypes.BlendOperationReverseSubtract {
		t.Errorf("BlendEquation calls = %v, want one reverse-subtract", calls)
	}

	rec.Reset()
	p.mode = batch.ModePush
	p.level++
	df.ApplyChange(p, batch.UVUint16)
	calls = rec.CallsFor("BlendEquation")
	if len(calls) != 1 || calls[0].Args[0] != gputypes.BlendOperationAdd {
		t.Errorf("BlendEquation calls = %v, want one add", calls)
	}
}

func TestApplyChangeMaskedToPush(t *testing.T) {
	rec, _, df := newTestDiffer(t)
	p := NewParams()
	df.ApplyAll(p, batch.UVUint16)

	rec.Reset()
	p.PushMask()
	df.ApplyChange(p, batch.UVUint16)

	if got := rec.Count("BindFramebuffer"); got != 1 {
		t.Errorf("BindFramebuffer calls = %d, want 1 (mask target)", got)
	}
	if got := rec.Count("BlendColor"); got != 1 {
		t.Errorf("BlendColor calls = %d, want 1", got)
	}
	funcs := rec.CallsFor("BlendFunc")
	if len(funcs) != 1 || funcs[0].Args[0] != gputypes.BlendFactorConstant {
		t.Errorf("BlendFunc calls = %v, want constant-color accumulate", funcs)
	}
}

func TestApplyChangeCommitRestoresTarget(t *testing.T) {
	rec, _, df := newTestDiffer(t)
	p := NewParams()
	p.PushMask()
	df.ApplyAll(p, batch.UVUint16)

	rec.Reset()
	p.CommitMask()
	df.ApplyChange(p, batch.UVUint16)

	fbos := rec.CallsFor("BindFramebuffer")
	if len(fbos) != 1 || fbos[0].Args[0] != gldriver.FramebufferID(0) {
		t.Errorf("BindFramebuffer calls = %v, want one bind of the default target", fbos)
	}
	funcs := rec.CallsFor("BlendFunc")
	if len(funcs) != 1 || funcs[0].Args[0] != gputypes.BlendFactorSrcAlpha {
		t.Errorf("BlendFunc calls = %v, want source-over restore", funcs)
	}
	// Masked drawing samples the mask atlas on unit 1.
	if got := rec.Count("BindTexture"); got != 1 {
		t.Errorf("BindTexture calls = %d, want 1 (mask atlas)", got)
	}
}

func TestApplyChangeShaderSwitchRebindsAttribs(t *testing.T) {
	rec, _, df := newTestDiffer(t)
	// Pretend the SDF program links with one attribute fewer; the
	// count was snapshotted at compile time, so adjust the snapshot.
	df.shaders.SDF.AttribCount = 4

	p := NewParams()
	df.ApplyAll(p, batch.UVUint16)
	if got := rec.Count("EnableVertexAttrib"); got != 5 {
		t.Fatalf("EnableVertexAttrib calls = %d, want 5", got)
	}

	rec.Reset()
	p.SDFMode()
	df.ApplyChange(p, batch.UVUint16)
	if got := rec.Count("UseProgram"); got != 1 {
		t.Errorf("UseProgram calls = %d, want 1", got)
	}
	calls := rec.CallsFor("DisableVertexAttrib")
	if len(calls) != 1 || calls[0].Args[0] != 4 {
		t.Errorf("DisableVertexAttrib calls = %v, want one for index 4", calls)
	}
}
