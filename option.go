package recmerge

// Option configures LinearMerge.
type Option struct {
	// MergeFunc folds a record into the run before it. Nil means KeepEarlier.
	MergeFunc MergeFunc
}

// WithMergeFunc returns an option function that sets the merge function
func WithMergeFunc(fn MergeFunc) func(*Option) {
	return func(opt *Option) {
		opt.MergeFunc = fn
	}
}

func newOption(opts []func(*Option)) *Option {
	option := &Option{}
	for _, opt := range opts {
		opt(option)
	}
	if option.MergeFunc == nil {
		option.MergeFunc = KeepEarlier
	}
	return option
}
