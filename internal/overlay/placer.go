package overlay

// Rect is a screen rectangle in pixels.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Intersects reports whether two rectangles overlap. Touching edges count as
// overlap, matching the detector's notion of occupied space.
func (r Rect) Intersects(o Rect) bool {
	return !(r.X+r.W < o.X || o.X+o.W < r.X || r.Y+r.H < o.Y || o.Y+o.H < r.Y)
}

// FaceRegion is a detected facial bounding box at a given frame time.
type FaceRegion struct {
	Box       Rect    `json:"box"`
	FrameTime float64 `json:"frame_time"`
}

// Placement is the computed screen position for a text overlay.
//
// FaceAvoided is false only when faces were present and every candidate
// position (and the fallback) risked covering one. That is a degraded outcome,
// not an error: the placement is still usable.
type Placement struct {
	Text        string `json:"text"`
	Position    Rect   `json:"position"`
	FaceAvoided bool   `json:"face_avoided"`
}

// Place picks the first candidate rectangle, in priority order, that overlaps
// no face region. When no candidate qualifies it settles on fallback, flagged
// as not face-avoided. With no face regions at all there is nothing to dodge,
// so the fallback (the configured safe default) is used directly.
//
// Place never fails; it always returns exactly one placement.
func Place(text string, faces []FaceRegion, candidates []Rect, fallback Rect) Placement {
	if len(faces) == 0 {
		return Placement{Text: text, Position: fallback, FaceAvoided: true}
	}

	for _, cand := range candidates {
		if !anyFaceIntersects(cand, faces) {
			return Placement{Text: text, Position: cand, FaceAvoided: true}
		}
	}

	return Placement{
		Text:        text,
		Position:    fallback,
		FaceAvoided: !anyFaceIntersects(fallback, faces),
	}
}

func anyFaceIntersects(r Rect, faces []FaceRegion) bool {
	for _, f := range faces {
		if r.Intersects(f.Box) {
			return true
		}
	}
	return false
}

// DefaultCandidates returns the standard priority-ordered overlay positions
// for a frame: bottom-left, bottom-right, top-left, top-right, then
// center-bottom. Bottom corners lead because viewers tolerate captions there.
func DefaultCandidates(frameW, frameH int) []Rect {
	w := frameW * 2 / 5
	h := frameH / 6
	margin := frameH / 24
	return []Rect{
		{X: margin, Y: frameH - h - margin, W: w, H: h},              // bottom-left
		{X: frameW - w - margin, Y: frameH - h - margin, W: w, H: h}, // bottom-right
		{X: margin, Y: margin, W: w, H: h},                           // top-left
		{X: frameW - w - margin, Y: margin, W: w, H: h},              // top-right
		{X: (frameW - w) / 2, Y: frameH - h - margin, W: w, H: h},    // center-bottom
	}
}

// DefaultFallback returns the caption band used when no candidate is clear of
// faces: centered horizontally at 85% of frame height, reels style.
func DefaultFallback(frameW, frameH int) Rect {
	w := frameW * 17 / 20
	h := frameH / 8
	return Rect{X: (frameW - w) / 2, Y: frameH*17/20 - h/2, W: w, H: h}
}
