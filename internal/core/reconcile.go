package core

// SelfDisplayName is shown in place of the viewer's own name.
const SelfDisplayName = "You"

// Viewer captures the slice of local identity state that rendering depends
// on: who the viewer is and whether they are currently in anonymous mode.
type Viewer struct {
	Username  string
	Anonymous bool
}

// View is the render decision for one message under one viewer state.
type View struct {
	Mine        bool
	DisplayName string
}

// Reconcile decides whether a message renders as the viewer's own and under
// which name. A message is authored by the viewer when either identity field
// matches their username; it renders as "mine" only while the message's
// anonymous flag agrees with the viewer's current one. Anonymous identity is
// fixed per message at send time, so toggling the local flag flips how the
// viewer's own past messages present.
//
// Pure and deterministic: invoked at first render and again on every
// anonymous-mode toggle.
func Reconcile(m *Message, v Viewer) View {
	authored := m.OriginalSender == v.Username || m.Sender == v.Username
	if !authored {
		return View{DisplayName: m.Sender}
	}
	if m.IsAnonymous {
		// Own anonymous message: keep the pseudonym either way, claim it
		// only while the viewer is anonymous too.
		return View{Mine: v.Anonymous, DisplayName: m.Sender}
	}
	if v.Anonymous {
		return View{DisplayName: m.OriginalSender}
	}
	return View{Mine: true, DisplayName: SelfDisplayName}
}
