package main

// Point is a canvas-local coordinate in postcard pixels, origin at the
// postcard's top-left corner.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// TextField pairs editable text with its position on the postcard.
type TextField struct {
	Value    string `json:"value"`
	Position Point  `json:"position"`
}

// User is the backend's user record.
type User struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}

// StoredPostcard is the record returned by the create call. The backend
// echoes the submitted fields; only the identifier matters to the composer.
type StoredPostcard struct {
	ID    string    `json:"_id"`
	Owner string    `json:"owner"`
	Title TextField `json:"title"`
}

// DragPayload identifies the field being dragged. Routing a drop uses the
// Kind tag only; Text exists so the ghost can be rendered under the pointer.
type DragPayload struct {
	Kind FieldKind
	Text string
}

type dragState struct {
	active  bool
	payload DragPayload
	// Half extents of the dragged element in postcard pixels, measured at
	// drag start so the element lands centered under the pointer.
	halfW int
	halfH int
	// Current pointer position in screen cells, for the ghost render.
	ghostCol int
	ghostRow int
}

type sessionMsg struct {
	user *User
	err  error
}

type loginResultMsg struct {
	user *User
	err  error
}

type usersLoadedMsg struct {
	users []User
	err   error
}

type submitResultMsg struct {
	card *StoredPostcard
	err  error
}

type exportResultMsg struct {
	path string
	err  error
}
