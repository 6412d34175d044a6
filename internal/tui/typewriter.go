package tui

// runesPerTick is how much queued text one tick reveals.
const runesPerTick = 2

// typewriter holds narration that has been queued but not yet fully shown.
type typewriter struct {
	queue    []rune
	revealed int
}

func (t *typewriter) push(s string) {
	t.queue = append(t.queue, []rune(s)...)
}

func (t typewriter) busy() bool {
	return t.revealed < len(t.queue)
}

// advance reveals the next runes and reports whether more remain.
func (t *typewriter) advance() bool {
	t.revealed = min(t.revealed+runesPerTick, len(t.queue))
	return t.busy()
}

func (t *typewriter) skip() {
	t.revealed = len(t.queue)
}

func (t typewriter) visible() string {
	return string(t.queue[:t.revealed])
}

// take returns the revealed text and drops it from the queue.
func (t *typewriter) take() string {
	s := t.visible()
	t.queue = t.queue[t.revealed:]
	t.revealed = 0
	return s
}
