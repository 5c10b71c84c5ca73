package signs

import (
	"log/slog"

	"github.com/specialistvlad/railpath/internal/pathfinding"
)

// Handler dispatches routing and prediction events to the actions of the
// signs found at the visited block.
type Handler struct {
	boards  map[string]*Board
	actions Actions
	logger  *slog.Logger
	unknown map[string]struct{}

	// Events are reused per nesting level; discovery may re-enter Process
	// when a node created by an action is walked synchronously.
	routing    []*RoutingEvent
	depth      int
	predicting PredictingEvent
}

var _ pathfinding.RoutingHandler = (*Handler)(nil)

// NewHandler creates a handler resolving sign types through actions.
func NewHandler(actions Actions, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		boards:  make(map[string]*Board),
		actions: actions,
		logger:  logger,
		unknown: make(map[string]struct{}),
	}
}

// AddBoard installs the board for its world, replacing any previous one.
func (h *Handler) AddBoard(b *Board) { h.boards[b.world] = b }

// Board returns the board of world, or nil.
func (h *Handler) Board(world string) *Board { return h.boards[world] }

// Process implements pathfinding.RoutingHandler.
func (h *Handler) Process(ev *pathfinding.RouteEvent) {
	b := h.boards[ev.World().Name()]
	if b == nil {
		return
	}
	list := b.At(ev.Location())
	if len(list) == 0 {
		return
	}

	if h.depth == len(h.routing) {
		h.routing = append(h.routing, &RoutingEvent{})
	}
	re := h.routing[h.depth]
	h.depth++
	defer func() {
		*re = RoutingEvent{}
		h.depth--
	}()

	for _, s := range list {
		if !s.Applies(ev.Direction()) {
			continue
		}
		a, ok := h.lookup(s)
		if !ok {
			continue
		}
		re.RouteEvent, re.sign = ev, s
		a.Route(re)
	}
}

// Predict implements pathfinding.RoutingHandler.
func (h *Handler) Predict(ev *pathfinding.PredictEvent) {
	b := h.boards[ev.World().Name()]
	if b == nil {
		return
	}
	pe := &h.predicting
	defer func() { *pe = PredictingEvent{} }()

	for _, s := range b.At(ev.Location()) {
		if !s.Applies(ev.Direction()) {
			continue
		}
		a, ok := h.lookup(s)
		if !ok {
			continue
		}
		pe.PredictEvent, pe.sign = ev, s
		a.Predict(pe)
	}
}

func (h *Handler) lookup(s *Sign) (Action, bool) {
	a, ok := h.actions.Action(s.Type)
	if !ok {
		if _, warned := h.unknown[s.Type]; !warned {
			h.unknown[s.Type] = struct{}{}
			h.logger.Warn("No action registered for sign type", "type", s.Type, "location", s.Location.String())
		}
	}
	return a, ok
}
