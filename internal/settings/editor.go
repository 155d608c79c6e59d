package settings

import (
	"github.com/qepting91/signal-filter/internal/classify"
	"github.com/qepting91/signal-filter/internal/domain"
)

// Editor exposes the two user-editable settings.
type Editor struct {
	store *Store
}

func NewEditor(store *Store) *Editor {
	return &Editor{store: store}
}

// Load returns the effective minimum karma and intro toggle.
func (e *Editor) Load() (int, bool, error) {
	def := domain.DefaultConfiguration()
	st, err := e.store.Load()
	if err != nil {
		return def.MinKarma, def.HideIntros, err
	}
	minKarma, hideIntros := def.MinKarma, def.HideIntros
	if st.MinKarma != nil {
		minKarma = *st.MinKarma
	}
	if st.HideIntros != nil {
		hideIntros = *st.HideIntros
	}
	return minKarma, hideIntros, nil
}

// Save parses minKarmaText leniently and persists both values. Text that does
// not start with a non-zero integer stores the default minimum.
func (e *Editor) Save(minKarmaText string, hideIntros bool) (int, bool, error) {
	minKarma := classify.ParseKarma(minKarmaText)
	if minKarma == 0 {
		minKarma = domain.DefaultConfiguration().MinKarma
	}
	st, err := e.store.Set(Settings{MinKarma: &minKarma, HideIntros: &hideIntros})
	if err != nil {
		return 0, false, err
	}
	return *st.MinKarma, *st.HideIntros, nil
}
