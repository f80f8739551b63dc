package core

// WeightedItem is one palette entry. Weights below 1 count as 1.
type WeightedItem struct {
	Item   ItemKind
	Weight int
}

// Palette is the weighted set of item kinds a level spawns.
type Palette []WeightedItem

// Items returns the item kinds in palette order.
func (p Palette) Items() []ItemKind {
	out := make([]ItemKind, len(p))
	for i, w := range p {
		out[i] = w.Item
	}
	return out
}

// Pick samples an item kind by weight.
func (p Palette) Pick(rng RNG) ItemKind {
	total := 0
	for _, w := range p {
		total += weightOf(w)
	}
	if total == 0 {
		return ""
	}
	roll := rng.Intn(total)
	for _, w := range p {
		roll -= weightOf(w)
		if roll < 0 {
			return w.Item
		}
	}
	return p[len(p)-1].Item
}

func weightOf(w WeightedItem) int {
	if w.Weight < 1 {
		return 1
	}
	return w.Weight
}

// GenParams configures layout generation.
type GenParams struct {
	MinPossibleMatches int // Guaranteed pairs to seed
	MaxItemAttempts    int // Samples per tile before falling back to a scan
	MaxPairAttempts    int // Tries to place the guaranteed pairs
}

// DefaultGenParams returns sensible defaults for layout generation.
func DefaultGenParams() GenParams {
	return GenParams{
		MinPossibleMatches: 3,
		MaxItemAttempts:    50,
		MaxPairAttempts:    100,
	}
}

// GenResult is a generated layout with bookkeeping about how it was built.
type GenResult struct {
	Layout   Layout
	Pairs    []Move // Guaranteed swaps seeded into the layout
	Degraded int    // Tiles that could not avoid forming a run
}

// Generator fills the empty tiles of a board with item kinds.
type Generator struct {
	Detector Detector
	Params   GenParams
}

// NewGenerator creates a generator.
func NewGenerator(det Detector, p GenParams) *Generator {
	if p.MaxItemAttempts < 1 {
		p.MaxItemAttempts = 1
	}
	if p.MaxPairAttempts < 0 {
		p.MaxPairAttempts = 0
	}
	return &Generator{Detector: det, Params: p}
}

// Generate builds a layout for every empty active tile of b. It first seeds
// up to MinPossibleMatches swaps that are guaranteed to match, then fills the
// rest while avoiding immediate runs. When a tile cannot avoid a run the
// layout is still returned and the tile is counted in Degraded.
func (g *Generator) Generate(b *Board, palette Palette, rng RNG) (GenResult, error) {
	if len(palette) == 0 {
		return GenResult{}, ErrNoPalette
	}

	res := GenResult{Layout: make(Layout)}
	empty := b.EmptyTiles()
	if len(empty) == 0 {
		return res, nil
	}

	st := &genState{
		gen:      g,
		board:    b,
		palette:  palette,
		rng:      rng,
		layout:   res.Layout,
		open:     make(TileSet, len(empty)),
		reserved: make(TileSet),
	}
	st.view = NewLayoutView(b, st.layout)
	for _, t := range empty {
		st.open.Add(t.Pos)
	}

	st.placePairs()
	res.Pairs = st.pairs

	for _, t := range empty {
		if _, done := st.layout[t.Pos]; done {
			continue
		}
		kind, ok := st.pickNonMatching(t.Pos, "")
		if !ok {
			res.Degraded++
		}
		st.layout[t.Pos] = kind
	}
	return res, nil
}

// genState is the scratch state of one Generate call.
type genState struct {
	gen      *Generator
	board    *Board
	palette  Palette
	rng      RNG
	layout   Layout
	view     LayoutView
	open     TileSet // Empty tiles still to be assigned
	reserved TileSet // Positions owned by a guaranteed pair
	pairs    []Move
}

// placePairs seeds guaranteed swaps. A pair is a first tile A and a second
// tile B next to it; the two tiles beyond B in the same direction share A's
// kind, so swapping A and B completes a run of three on B's side.
func (st *genState) placePairs() {
	want := st.gen.Params.MinPossibleMatches
	if want <= 0 {
		return
	}

	var firsts []Coord
	for _, t := range st.board.Tiles() {
		if st.usable(t.Pos) {
			firsts = append(firsts, t.Pos)
		}
	}
	if len(firsts) == 0 {
		return
	}

	for attempt := 0; attempt < st.gen.Params.MaxPairAttempts && len(st.pairs) < want; attempt++ {
		a := firsts[st.rng.Intn(len(firsts))]
		dir := AllDirs[st.rng.Intn(len(AllDirs))]
		st.tryPair(a, dir)
	}
}

// usable reports whether pos can take part in a pair: unassigned-empty or
// holding a matchable piece, and not reserved yet.
func (st *genState) usable(pos Coord) bool {
	if st.reserved.Has(pos) {
		return false
	}
	if st.open.Has(pos) {
		return true
	}
	t := st.board.Tile(pos)
	if !st.board.IsValidTile(t) || t.Object() == nil {
		return false
	}
	return t.Object().Matchable() && t.Object().Movable()
}

// fixedKind returns the kind already decided for pos, from the layout or the
// board.
func (st *genState) fixedKind(pos Coord) (ItemKind, bool) {
	if k, ok := st.layout[pos]; ok {
		return k, true
	}
	if st.open.Has(pos) {
		return "", false
	}
	return st.board.KindAt(pos)
}

func (st *genState) tryPair(a Coord, dir Dir) bool {
	b := a.Step(dir)
	e1 := b.Step(dir)
	e2 := e1.Step(dir)
	for _, c := range [4]Coord{a, b, e1, e2} {
		if !st.usable(c) {
			return false
		}
	}

	var kind ItemKind
	haveKind := false
	for _, c := range [3]Coord{a, e1, e2} {
		k, ok := st.fixedKind(c)
		if !ok {
			continue
		}
		if haveKind && k != kind {
			return false
		}
		kind, haveKind = k, true
	}
	if !haveKind {
		kind = st.palette.Pick(st.rng)
	}
	if kb, ok := st.fixedKind(b); ok && kb == kind {
		return false
	}

	var assigned []Coord
	rollback := func() bool {
		for _, c := range assigned {
			delete(st.layout, c)
		}
		return false
	}
	for _, c := range [3]Coord{a, e1, e2} {
		if _, ok := st.fixedKind(c); ok {
			continue
		}
		if st.gen.Detector.WouldCreateMatch(st.view, c, kind) {
			return rollback()
		}
		st.layout[c] = kind
		assigned = append(assigned, c)
	}
	if _, ok := st.fixedKind(b); !ok {
		kb, ok := st.pickNonMatching(b, kind)
		if !ok {
			return rollback()
		}
		st.layout[b] = kb
		assigned = append(assigned, b)
	}

	for _, c := range [4]Coord{a, b, e1, e2} {
		st.reserved.Add(c)
	}
	st.pairs = append(st.pairs, Move{A: a, B: b})
	return true
}

// pickNonMatching chooses a kind for pos that does not complete a run and is
// not exclude. Weighted sampling runs first; a palette scan follows. When
// nothing fits, the last sample is returned with ok == false.
func (st *genState) pickNonMatching(pos Coord, exclude ItemKind) (ItemKind, bool) {
	det := st.gen.Detector
	fits := func(k ItemKind) bool {
		return k != exclude && !det.WouldCreateMatch(st.view, pos, k)
	}

	var last ItemKind
	for i := 0; i < st.gen.Params.MaxItemAttempts; i++ {
		last = st.palette.Pick(st.rng)
		if fits(last) {
			return last, true
		}
	}

	items := st.palette.Items()
	offset := st.rng.Intn(len(items))
	for i := range items {
		k := items[(offset+i)%len(items)]
		if fits(k) {
			return k, true
		}
	}
	return last, false
}
