package types

// Layout holds the page-composition numbers shared by the config file and the
// composer. All values are PDF points. Slot 1 is the upper image on a page,
// slot 2 the lower one.
type Layout struct {
	// HMargin is the left edge of every slot.
	HMargin float64 `json:"h_margin" yaml:"h_margin" mapstructure:"h_margin"`

	// VMargin separates the two rows and the page edges.
	VMargin float64 `json:"v_margin" yaml:"v_margin" mapstructure:"v_margin"`

	// TargetW and TargetH bound the aspect-fit box of each image.
	TargetW float64 `json:"target_w" yaml:"target_w" mapstructure:"target_w"`
	TargetH float64 `json:"target_h" yaml:"target_h" mapstructure:"target_h"`

	XOffset1 float64 `json:"x_offset1" yaml:"x_offset1" mapstructure:"x_offset1"`
	YOffset1 float64 `json:"y_offset1" yaml:"y_offset1" mapstructure:"y_offset1"`
	XOffset2 float64 `json:"x_offset2" yaml:"x_offset2" mapstructure:"x_offset2"`
	YOffset2 float64 `json:"y_offset2" yaml:"y_offset2" mapstructure:"y_offset2"`
}

// SlotOffset returns the configured (dx, dy) for slot 0 or 1.
func (l Layout) SlotOffset(slot int) (dx, dy float64) {
	if slot == 0 {
		return l.XOffset1, l.YOffset1
	}
	return l.XOffset2, l.YOffset2
}

// DefaultLayout returns the layout used when the config file has no values.
func DefaultLayout() Layout {
	return Layout{
		HMargin:  20,
		VMargin:  30,
		TargetW:  300,
		TargetH:  160,
		XOffset1: 0,
		YOffset1: -50,
		XOffset2: 0,
		YOffset2: 10,
	}
}

// Config is the persisted application state. The key names match the
// prevConfig.json files written by earlier releases, so the struct embeds
// Layout with squash to keep the document flat.
type Config struct {
	// SourceDir is the folder images are read from.
	SourceDir string `json:"source_dir" yaml:"source_dir" mapstructure:"source_dir"`

	// TargetDir receives copied images and per-user packet folders.
	TargetDir string `json:"target_dir" yaml:"target_dir" mapstructure:"target_dir"`

	// TemplatePath is the background PDF. The key is historically named
	// template_dir even though it holds a file path.
	TemplatePath string `json:"template_dir" yaml:"template_dir" mapstructure:"template_dir"`

	// FileNames is the last comma-separated copy request.
	FileNames string `json:"file_names" yaml:"file_names" mapstructure:"file_names"`

	Layout `yaml:",inline" mapstructure:",squash"`

	Users []User `json:"users" yaml:"users" mapstructure:"users"`
}
