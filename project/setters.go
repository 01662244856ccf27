package project

// SetProjectName returns an UpdateSetter that sets the project's name.
func SetProjectName(name string) UpdateSetter {
	return func(p *Project) error {
		if name == "" {
			return ErrInvalidProjectName
		}
		p.ProjectName = name
		return nil
	}
}

// SetDescription returns an UpdateSetter that sets the project's description.
func SetDescription(description string) UpdateSetter {
	return func(p *Project) error {
		p.Description = description
		return nil
	}
}

// SetClientID returns an UpdateSetter that moves the project to another client.
func SetClientID(clientID int) UpdateSetter {
	return func(p *Project) error {
		if clientID <= 0 {
			return ErrInvalidClient
		}
		p.ClientID = clientID
		return nil
	}
}

// SetStatus returns an UpdateSetter that sets the project's status.
func SetStatus(status Status) UpdateSetter {
	return func(p *Project) error {
		if !status.IsValid() {
			return ErrInvalidStatus
		}
		p.Status = status
		return nil
	}
}
