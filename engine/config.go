package engine

import (
	"fmt"

	dragon "github.com/dylhunn/dragontoothmg"
)

// Feature flags and tuning knobs for the search.
// These are vars rather than consts so that tests and the UCI driver can toggle them.
var UseTT = true
var UseMoveOrdering = true
var UseKillerMoves = true
var UseHistoryHeuristic = true
var UseQSearch = true
var UseDeltaPruning = true
var UsePosRepetition = true
var CarryHeuristics = true // keep killer/history tables warm between searches of the same game
var DumpSearchStats = false

var SearchCutoffPercent = 55 // If we've used more than this percentage of the target time then we bail instead of starting a new depth

var DeltaPruningMargin EvalCp = 200

const MinDepth = 1
const MaxDepth = 64

// Max depth-from-root for per-ply tables - qsearch plies can run past MaxDepth
const MaxPly = 128

const NoMove dragon.Move = 0

const DefaultTTSizeEntries = 1 << 20

// Max PV length reported back from the transposition table
const MaxPVLen = 10

type ConfigParam struct {
	Descr string
	Min   int
	Max   int
	Get   func() int
	Set   func(val int)
}

var configParams = make([]ConfigParam, 0, 64)

func GetConfigParams() []ConfigParam {
	return configParams
}

func SetConfigParam(descr string, val int) error {
	for i := range configParams {
		if configParams[i].Descr == descr {
			if val < configParams[i].Min || configParams[i].Max < val {
				return fmt.Errorf("engine: value %d out of range [%d, %d] for param %s", val, configParams[i].Min, configParams[i].Max, descr)
			}
			configParams[i].Set(val)
			return nil
		}
	}
	return fmt.Errorf("engine: unknown config param %s", descr)
}

func RegisterConfigParamInt(descr string, param *int, min int, max int) {
	configParams = append(configParams, ConfigParam{
		Descr: descr,
		Min:   min,
		Max:   max,
		Get:   func() int { return *param },
		Set:   func(val int) { *param = val }})
}

func RegisterConfigParamBool(descr string, param *bool) {
	configParams = append(configParams, ConfigParam{
		Descr: descr,
		Min:   0,
		Max:   1,
		Get: func() int {
			if *param {
				return 1
			}
			return 0
		},
		Set: func(val int) { *param = val != 0 }})
}

func RegisterConfigParamEvalCp(descr string, param *EvalCp) {
	configParams = append(configParams, ConfigParam{
		Descr: descr,
		Min:   int(YourCheckMateEval),
		Max:   int(MyCheckMateEval),
		Get:   func() int { return int(*param) },
		Set:   func(val int) { *param = EvalCp(val) }})
}

func init() {
	RegisterConfigParamBool("UseTT", &UseTT)
	RegisterConfigParamBool("UseMoveOrdering", &UseMoveOrdering)
	RegisterConfigParamBool("UseKillerMoves", &UseKillerMoves)
	RegisterConfigParamBool("UseHistoryHeuristic", &UseHistoryHeuristic)
	RegisterConfigParamBool("UseQSearch", &UseQSearch)
	RegisterConfigParamBool("UseDeltaPruning", &UseDeltaPruning)
	RegisterConfigParamBool("UsePosRepetition", &UsePosRepetition)
	RegisterConfigParamBool("CarryHeuristics", &CarryHeuristics)
	RegisterConfigParamInt("SearchCutoffPercent", &SearchCutoffPercent, 1, 100)
	RegisterConfigParamEvalCp("DeltaPruningMargin", &DeltaPruningMargin)
}
