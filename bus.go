package grid

// Topic names an event stream on a Bus.
type Topic string

const (
	TopicSelectionChanged Topic = "selection-changed"
	TopicDragEnter        Topic = "drag-enter"
	TopicEditorRequested  Topic = "editor-requested"
)

// Event is anything published on a Bus.
type Event interface {
	Topic() Topic
}

// InputSource tells subscribers what caused a selection change.
type InputSource int

const (
	SourcePointer InputSource = iota
	SourceKeyboard
	SourceProgram
)

func (s InputSource) String() string {
	switch s {
	case SourcePointer:
		return "pointer"
	case SourceKeyboard:
		return "keyboard"
	default:
		return "program"
	}
}

// SelectionChanged is published on every selection transition.
// OpenEditor is set when a single activation may show the edit affordance.
type SelectionChanged struct {
	Previous   Selection
	Current    Selection
	Source     InputSource
	OpenEditor bool
}

func (SelectionChanged) Topic() Topic { return TopicSelectionChanged }

// DragEnter is published when a dragged row hovers another row.
type DragEnter struct {
	Row int
}

func (DragEnter) Topic() Topic { return TopicDragEnter }

// EditorRequested asks the interaction layer to open an editor.
type EditorRequested struct {
	Position CellPosition
	Trigger  Activation
}

func (EditorRequested) Topic() Topic { return TopicEditorRequested }

type subscription struct {
	id int
	fn func(Event)
}

// Bus is a synchronous publish/subscribe channel owned by one grid.
// Handlers run inside Publish, in subscription order.
type Bus struct {
	subs   map[Topic][]subscription
	nextID int
	closed bool
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Topic][]subscription)}
}

// Subscribe registers fn for topic and returns a function that removes it.
// Subscribing to a closed bus is a no-op.
func (b *Bus) Subscribe(topic Topic, fn func(Event)) (cancel func()) {
	if b.closed || fn == nil {
		return func() {}
	}
	b.nextID++
	id := b.nextID
	b.subs[topic] = append(b.subs[topic], subscription{id: id, fn: fn})
	return func() { b.unsubscribe(topic, id) }
}

func (b *Bus) unsubscribe(topic Topic, id int) {
	list := b.subs[topic]
	for i, s := range list {
		if s.id == id {
			b.subs[topic] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(b.subs[topic]) == 0 {
		delete(b.subs, topic)
	}
}

// Publish delivers e to the current subscribers of its topic.
func (b *Bus) Publish(e Event) {
	if b.closed {
		return
	}
	// Copy so handlers may unsubscribe while being called.
	list := append([]subscription(nil), b.subs[e.Topic()]...)
	for _, s := range list {
		s.fn(e)
	}
}

// Len returns the number of live subscriptions.
func (b *Bus) Len() int {
	n := 0
	for _, list := range b.subs {
		n += len(list)
	}
	return n
}

// Close drops every subscription. Later publishes are ignored.
func (b *Bus) Close() {
	b.closed = true
	b.subs = make(map[Topic][]subscription)
}
