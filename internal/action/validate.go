package action

// Validate implements Action.
func (SetEditable) Validate() error { return nil }

// Validate implements Action.
func (a Insert) Validate() error {
	if a.ID == "" {
		return Invalid(TypeInsert, "id", "is required")
	}
	if !a.Commit.valid() {
		return Invalid(TypeInsert, "commit", "unknown commit mode")
	}
	return nil
}

// Validate implements Action.
func (a Change) Validate() error {
	if a.ID == "" {
		return Invalid(TypeChange, "id", "is required")
	}
	if !a.Commit.valid() {
		return Invalid(TypeChange, "commit", "unknown commit mode")
	}
	return nil
}

// Validate implements Action.
func (a Remove) Validate() error {
	if a.ID == "" {
		return Invalid(TypeRemove, "id", "is required")
	}
	if !a.Commit.valid() {
		return Invalid(TypeRemove, "commit", "unknown commit mode")
	}
	return nil
}

// Validate implements Action.
func (a CopyToClipboard) Validate() error {
	if a.ID == "" {
		return Invalid(TypeCopyToClipboard, "id", "is required")
	}
	return nil
}

// Validate implements Action. An empty id is valid and clears focus.
func (Focus) Validate() error { return nil }

// Validate implements Action.
func (Undo) Validate() error { return nil }

// Validate implements Action.
func (Redo) Validate() error { return nil }

// Validate implements Action.
func (Commit) Validate() error { return nil }

// Validate implements Action.
func (a RegisterPlugin) Validate() error {
	if err := a.Descriptor.Validate(); err != nil {
		return Rejected(TypeRegisterPlugin, err)
	}
	return nil
}

// Validate implements Action. An empty name clears the default.
func (SetDefaultPlugin) Validate() error { return nil }
