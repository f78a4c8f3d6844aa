package mcp

// GreetInput is the input for the greet tool.
type GreetInput struct {
	Name string `json:"name" jsonschema:"required,Name to greet"`
}

// GreetOutput is the output for the greet tool.
type GreetOutput struct {
	Greeting string `json:"greeting"`
}

// CreatePanelInput is the input for the create_floating_panel tool.
type CreatePanelInput struct{}

// CreatePanelOutput is the output for the create_floating_panel tool.
type CreatePanelOutput struct {
	WindowID string `json:"window_id"`
}

// ClosePanelInput is the input for the close_floating_panel tool.
type ClosePanelInput struct {
	WindowID string `json:"window_id" jsonschema:"required,Panel window id as returned by create_floating_panel"`
}

// ClosePanelOutput is the output for the close_floating_panel tool.
type ClosePanelOutput struct {
	Closed bool `json:"closed"`
}

// ListPanelsInput is the input for the list_floating_panels tool.
type ListPanelsInput struct{}

// ListPanelsOutput is the output for the list_floating_panels tool.
type ListPanelsOutput struct {
	Windows []string `json:"windows"`
}

// MovePanelInput is the input for the move_floating_panel tool.
type MovePanelInput struct {
	WindowID string  `json:"window_id" jsonschema:"required,Panel window id"`
	X        float64 `json:"x" jsonschema:"required,New left edge in logical pixels"`
	Y        float64 `json:"y" jsonschema:"required,New top edge in logical pixels"`
}

// MovePanelOutput is the output for the move_floating_panel tool.
type MovePanelOutput struct {
	Moved bool `json:"moved"`
}

// ResizePanelInput is the input for the resize_floating_panel tool.
type ResizePanelInput struct {
	WindowID string  `json:"window_id" jsonschema:"required,Panel window id"`
	Width    float64 `json:"width" jsonschema:"required,New width in logical pixels"`
	Height   float64 `json:"height" jsonschema:"required,New height in logical pixels"`
}

// ResizePanelOutput is the output for the resize_floating_panel tool.
type ResizePanelOutput struct {
	Resized bool `json:"resized"`
}
