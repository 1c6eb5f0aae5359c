package model

type Task struct {
	Meta
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

func (t Task) WithMetadata(m Meta) Task {
	t.Meta = m
	return t
}

type TaskInput struct {
	Name      *string `json:"name" binding:"required"`
	Completed *bool   `json:"completed" binding:"required"`
}

func (in TaskInput) Record() Task {
	return Task{
		Name:      value(in.Name),
		Completed: value(in.Completed),
	}
}

type TaskPatch struct {
	Name      Optional[string] `json:"name"`
	Completed Optional[bool]   `json:"completed"`
}

func (p TaskPatch) Apply(t Task) Task {
	t.Name = p.Name.Or(t.Name)
	t.Completed = p.Completed.Or(t.Completed)
	return t
}
