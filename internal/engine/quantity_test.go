package engine

import (
    "reflect"
    "testing"
)

func TestDailyQuantities_Deltas(t *testing.T) {
    // 3-night stay, 4 persons, one person away on the second day
    got, malformed := DailyQuantities(4, 3, "[0,-1,0]", false)
    if malformed {
        t.Fatal("valid qty_vars reported as malformed")
    }
    if want := []int{4, 3, 4}; !reflect.DeepEqual(got, want) {
        t.Errorf("daily quantities = %v, want %v", got, want)
    }
}

func TestDailyQuantities_AccommodationTrailingDay(t *testing.T) {
    // accommodation grids have one more day than the delta list; the
    // check-out morning reuses the last delta
    got, malformed := DailyQuantities(4, 4, "[0,0,-2]", true)
    if malformed {
        t.Fatal("valid qty_vars reported as malformed")
    }
    if want := []int{4, 4, 2, 2}; !reflect.DeepEqual(got, want) {
        t.Errorf("daily quantities = %v, want %v", got, want)
    }
}

func TestDailyQuantities_MalformedFallsBack(t *testing.T) {
    got, malformed := DailyQuantities(3, 2, "{broken", false)
    if !malformed {
        t.Fatal("broken qty_vars not reported")
    }
    if want := []int{3, 3}; !reflect.DeepEqual(got, want) {
        t.Errorf("fallback quantities = %v, want flat %v", got, want)
    }
}

func TestDailyQuantities_AbsentVars(t *testing.T) {
    got, malformed := DailyQuantities(2, 3, "", false)
    if malformed {
        t.Fatal("absent qty_vars reported as malformed")
    }
    if want := []int{2, 2, 2}; !reflect.DeepEqual(got, want) {
        t.Errorf("quantities = %v, want flat %v", got, want)
    }
}

func TestResizeVars(t *testing.T) {
    cases := []struct {
        name string
        in   []int
        n    int
        want []int
    }{
        {name: "shrink keeps head", in: []int{0, -1, 1, 0}, n: 2, want: []int{0, -1}},
        {name: "grow pads zeros", in: []int{0, -1}, n: 4, want: []int{0, -1, 0, 0}},
        {name: "same length untouched", in: []int{1, 2}, n: 2, want: []int{1, 2}},
        {name: "negative clamps empty", in: []int{1}, n: -1, want: []int{}},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            if got := ResizeVars(tc.in, tc.n); !reflect.DeepEqual(got, tc.want) {
                t.Errorf("ResizeVars(%v, %d) = %v, want %v", tc.in, tc.n, got, tc.want)
            }
        })
    }
}

func TestResizeVars_RoundTrip(t *testing.T) {
    // shortening a stay and restoring its length preserves the deltas
    // of the days both lengths share
    orig := []int{0, -1, 2, 0}
    short := ResizeVars(orig, 2)
    back := ResizeVars(short, 4)
    for i := 0; i < 2; i++ {
        if back[i] != orig[i] {
            t.Errorf("delta %d = %d after round trip, want %d", i, back[i], orig[i])
        }
    }
}

func TestTotalFromVars(t *testing.T) {
    if got := TotalFromVars(4, []int{0, -1, 0}); got != 11 {
        t.Errorf("TotalFromVars = %d, want 11", got)
    }
}

func TestQtyVarsCodec(t *testing.T) {
    raw := EncodeQtyVars([]int{0, -2, 1})
    vars, ok := DecodeQtyVars(raw)
    if !ok || !reflect.DeepEqual(vars, []int{0, -2, 1}) {
        t.Errorf("decode(encode) = %v ok=%v", vars, ok)
    }
    if vars, ok := DecodeQtyVars(""); !ok || vars != nil {
        t.Errorf("empty qty_vars = %v ok=%v, want nil true", vars, ok)
    }
}
