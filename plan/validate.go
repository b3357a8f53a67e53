package plan

import "github.com/mkessler/coldb/errs"

// Validate checks structural invariants a built-and-optimized Plan must
// hold before execution: at least one stage, no stage left empty, Select
// nodes confined to the final stage, and no nil placeholder nodes.
func Validate(stages [][]Node) error {
	if len(stages) == 0 {
		return errs.PlanErr(errs.NoStages)
	}
	last := len(stages) - 1
	for i, stage := range stages {
		if len(stage) == 0 {
			return errs.PlanErr(errs.EmptyStages)
		}
		for _, n := range stage {
			if n == nil {
				return errs.PlanErr(errs.EmptyNodeInStages)
			}
			_, isSelect := n.(*SelectNode)
			if isSelect && i != last {
				return errs.PlanErr(errs.InvalidStageOrder)
			}
			if !isSelect && i == last {
				return errs.PlanErr(errs.InvalidStageOrder)
			}
		}
	}
	return nil
}
