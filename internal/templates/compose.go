package templates

// Context keys available to the templates.
const (
	KeyTitle       = "title"
	KeyCurrentDate = "currentDate"
	KeyBody        = "body"
)

// Compose renders index with data, then renders layout with the title and
// the rendered index as body. It performs no I/O.
func (e *Engine) Compose(layout, index string, data PageData) (string, error) {
	return e.compose(Resource{Name: "layout", Text: layout}, Resource{Name: "index", Text: index}, data)
}

// ComposeResources is Compose over loaded resources, keeping their names in errors.
func (e *Engine) ComposeResources(layout, index Resource, data PageData) (string, error) {
	return e.compose(layout, index, data)
}

func (e *Engine) compose(layout, index Resource, data PageData) (string, error) {
	body, err := e.Render(index.Name, index.Text, data.IndexContext())
	if err != nil {
		return "", err
	}
	return e.Render(layout.Name, layout.Text, data.LayoutContext(body))
}
