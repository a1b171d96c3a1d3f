package workspace

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/Lucineia/RepositoryMiner/lib/miner"
)

type configKey struct {
	apply func(o *miner.Options, value string) error
}

// configKeys are the options that can have a workspace default. They only apply when the option was
// not given.
var configKeys = map[string]configKey{
	"refs":    {list(func(o *miner.Options) *[]string { return &o.Refs })},
	"include": {list(func(o *miner.Options) *[]string { return &o.Include })},
	"exclude": {list(func(o *miner.Options) *[]string { return &o.Exclude })},
	"workers": {integer(func(o *miner.Options) *int { return &o.Workers })},
	"retries": {integer(func(o *miner.Options) *int { return &o.Retries })},

	"churn.binary-threshold": {func(o *miner.Options, value string) error {
		v, err := strconv.ParseInt(value, 10, 64)
		if err == nil && o.Churn.BinaryThreshold == 0 {
			o.Churn.BinaryThreshold = v
		}
		return err
	}},

	"smells.brain-method.mloc":        {integer(func(o *miner.Options) *int { return &o.Smells.BrainMethod.MLOC })},
	"smells.brain-method.cyclo":       {float(func(o *miner.Options) *float64 { return &o.Smells.BrainMethod.CYCLO })},
	"smells.brain-method.max-nesting": {integer(func(o *miner.Options) *int { return &o.Smells.BrainMethod.MaxNesting })},
	"smells.brain-method.noav":        {integer(func(o *miner.Options) *int { return &o.Smells.BrainMethod.NOAV })},
	"smells.complex-method.cyclo":     {float(func(o *miner.Options) *float64 { return &o.Smells.ComplexMethod.CYCLO })},
	"smells.long-method.mloc":         {integer(func(o *miner.Options) *int { return &o.Smells.LongMethod.MLOC })},
}

func ConfigKeys() []string {
	result := lo.Keys(configKeys)
	sort.Strings(result)
	return result
}

// ApplyConfig fills the unset fields of opts with the values in config.
func ApplyConfig(config map[string]string, opts miner.Options) (miner.Options, error) {
	for k, v := range config {
		key, ok := configKeys[k]
		if !ok {
			continue
		}

		err := key.apply(&opts, v)
		if err != nil {
			return opts, errors.Wrapf(err, "invalid value for %v", k)
		}
	}

	return opts, nil
}

func list(field func(o *miner.Options) *[]string) func(o *miner.Options, value string) error {
	return func(o *miner.Options, value string) error {
		f := field(o)
		if len(*f) == 0 && value != "" {
			*f = lo.Map(strings.Split(value, ","), func(i string, _ int) string { return strings.TrimSpace(i) })
		}
		return nil
	}
}

func integer(field func(o *miner.Options) *int) func(o *miner.Options, value string) error {
	return func(o *miner.Options, value string) error {
		v, err := strconv.Atoi(value)
		if err != nil {
			return err
		}

		f := field(o)
		if *f == 0 {
			*f = v
		}
		return nil
	}
}

func float(field func(o *miner.Options) *float64) func(o *miner.Options, value string) error {
	return func(o *miner.Options, value string) error {
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}

		f := field(o)
		if *f == 0 {
			*f = v
		}
		return nil
	}
}
