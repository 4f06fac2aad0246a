package catalog

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/ashwinyue/fractools/internal/model"
	"github.com/ashwinyue/fractools/internal/repository"
	"github.com/ashwinyue/fractools/internal/store"
	"github.com/ashwinyue/fractools/internal/testutil"
)

var errBackend = &repository.BackendError{Op: "test", Err: errors.New("connection refused")}

// flakyGateway 包装本地网关，按操作名注入错误
type flakyGateway struct {
	repository.Gateway

	mu    sync.Mutex
	fail  map[string]error
	calls map[string]int
}

func (f *flakyGateway) check(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	return f.fail[op]
}

func (f *flakyGateway) FetchTools(ctx context.Context) ([]model.Tool, error) {
	if err := f.check("fetchTools"); err != nil {
		return nil, err
	}
	return f.Gateway.FetchTools(ctx)
}

func (f *flakyGateway) FetchGroups(ctx context.Context) ([]model.Group, error) {
	if err := f.check("fetchGroups"); err != nil {
		return nil, err
	}
	return f.Gateway.FetchGroups(ctx)
}

func (f *flakyGateway) AddTool(ctx context.Context, in model.ToolInput) (model.Tool, error) {
	if err := f.check("addTool"); err != nil {
		return model.Tool{}, err
	}
	return f.Gateway.AddTool(ctx, in)
}

func (f *flakyGateway) UpdateTool(ctx context.Context, id string, p model.ToolPatch) error {
	if err := f.check("updateTool"); err != nil {
		return err
	}
	return f.Gateway.UpdateTool(ctx, id, p)
}

func (f *flakyGateway) DeleteTool(ctx context.Context, id string) error {
	if err := f.check("deleteTool"); err != nil {
		return err
	}
	return f.Gateway.DeleteTool(ctx, id)
}

func (f *flakyGateway) AddGroup(ctx context.Context, in model.GroupInput) (model.Group, error) {
	if err := f.check("addGroup"); err != nil {
		return model.Group{}, err
	}
	return f.Gateway.AddGroup(ctx, in)
}

func (f *flakyGateway) UpdateGroup(ctx context.Context, id string, p model.GroupPatch) error {
	if err := f.check("updateGroup"); err != nil {
		return err
	}
	return f.Gateway.UpdateGroup(ctx, id, p)
}

func (f *flakyGateway) DeleteGroup(ctx context.Context, id string) error {
	if err := f.check("deleteGroup"); err != nil {
		return err
	}
	return f.Gateway.DeleteGroup(ctx, id)
}

func newTestView(t *testing.T) (*View, *flakyGateway) {
	t.Helper()
	local, err := repository.NewLocalGateway(context.Background(), store.NewMemory(), zap.NewNop())
	if err != nil {
		t.Fatalf("NewLocalGateway() error = %v", err)
	}
	gw := &flakyGateway{Gateway: local, fail: map[string]error{}, calls: map[string]int{}}
	v := NewView(gw, zap.NewNop())
	if err := v.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return v, gw
}

func TestView_Load(t *testing.T) {
	v, _ := newTestView(t)

	if v.Mode() != repository.ModeLocal {
		t.Errorf("Mode() = %q", v.Mode())
	}
	if got := testutil.ToolIDs(v.Tools()); !reflect.DeepEqual(got, []string{"t1", "t2", "t3"}) {
		t.Errorf("tools = %v", got)
	}
	if got := testutil.GroupIDs(v.Groups()); !reflect.DeepEqual(got, []string{"g1", "g2", "g3"}) {
		t.Errorf("groups = %v", got)
	}
}

func TestView_LoadFailureKeepsState(t *testing.T) {
	v, gw := newTestView(t)
	gw.fail["fetchGroups"] = errBackend

	err := v.Load(context.Background())
	var be *repository.BackendError
	if !errors.As(err, &be) {
		t.Fatalf("Load() error = %v, want BackendError", err)
	}
	if len(v.Tools()) != 3 || len(v.Groups()) != 3 {
		t.Errorf("state changed after failed load: %d tools, %d groups", len(v.Tools()), len(v.Groups()))
	}
}

func TestView_FilteredTools(t *testing.T) {
	v, _ := newTestView(t)

	tests := []struct {
		groupID string
		want    []string
	}{
		{groupID: "", want: []string{"t1", "t2", "t3"}},
		{groupID: "g1", want: []string{"t1", "t2"}},
		{groupID: "g2", want: []string{}},
		{groupID: "g3", want: []string{"t3"}},
		{groupID: "G1", want: []string{}},
	}

	for _, tt := range tests {
		v.SelectGroup(tt.groupID)
		if got := testutil.ToolIDs(v.FilteredTools()); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("FilteredTools(%q) = %v, want %v", tt.groupID, got, tt.want)
		}
		if got := testutil.ToolIDs(v.ToolsInGroup(tt.groupID)); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ToolsInGroup(%q) = %v, want %v", tt.groupID, got, tt.want)
		}
	}
}

func TestView_AddTool(t *testing.T) {
	ctx := context.Background()
	v, _ := newTestView(t)

	in := testutil.SampleToolInput("g2")
	in.Name = "  套管扶正器 "
	tool, err := v.AddTool(ctx, in)
	if err != nil {
		t.Fatalf("AddTool() error = %v", err)
	}
	if tool.Name != "套管扶正器" {
		t.Errorf("Name = %q, want trimmed", tool.Name)
	}

	tools := v.Tools()
	if tools[0].ID != tool.ID || len(tools) != 4 {
		t.Errorf("tools = %v, new tool should be first", testutil.ToolIDs(tools))
	}
	group, ok := v.GroupOf(tools[0])
	if !ok || group.ID != "g2" {
		t.Errorf("GroupOf() = %+v, %v", group, ok)
	}
}

func TestView_AddToolValidation(t *testing.T) {
	ctx := context.Background()
	v, gw := newTestView(t)

	if _, err := v.AddTool(ctx, testutil.SampleToolInput("g404")); !errors.Is(err, ErrUnknownGroup) {
		t.Errorf("AddTool(unknown group) error = %v", err)
	}
	in := testutil.SampleToolInput("g1")
	in.Name = "   "
	if _, err := v.AddTool(ctx, in); !errors.Is(err, ErrEmptyName) {
		t.Errorf("AddTool(blank name) error = %v", err)
	}
	if gw.calls["addTool"] != 0 {
		t.Errorf("gateway called %d times for invalid input", gw.calls["addTool"])
	}
}

func TestView_BackendFailureLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()

	ops := []struct {
		op  string
		run func(v *View) error
	}{
		{"addTool", func(v *View) error { _, err := v.AddTool(ctx, testutil.SampleToolInput("g1")); return err }},
		{"updateTool", func(v *View) error { return v.RenameTool(ctx, "t1", "新名字") }},
		{"updateTool", func(v *View) error { return v.MoveTool(ctx, "t1", "测量仪器") }},
		{"deleteTool", func(v *View) error { return v.DeleteTool(ctx, "t1") }},
		{"updateTool", func(v *View) error { return v.RemoveSpec(ctx, "t1", "直径") }},
		{"addGroup", func(v *View) error { _, err := v.AddGroup(ctx, model.GroupInput{Name: "泵车"}); return err }},
		{"updateGroup", func(v *View) error {
			return v.UpdateGroup(ctx, "g1", model.GroupPatch{Color: testutil.StrPtr("#ec4899")})
		}},
		{"deleteGroup", func(v *View) error { return v.DeleteGroup(ctx, "g1") }},
	}

	for _, tt := range ops {
		t.Run(tt.op, func(t *testing.T) {
			v, gw := newTestView(t)
			v.SelectGroup("g1")
			beforeTools, beforeGroups := v.Tools(), v.Groups()
			gw.fail[tt.op] = errBackend

			err := tt.run(v)
			var be *repository.BackendError
			if !errors.As(err, &be) {
				t.Fatalf("error = %v, want BackendError", err)
			}
			if !reflect.DeepEqual(v.Tools(), beforeTools) {
				t.Error("tools changed after backend failure")
			}
			if !reflect.DeepEqual(v.Groups(), beforeGroups) {
				t.Error("groups changed after backend failure")
			}
			if v.Selected() != "g1" {
				t.Errorf("Selected() = %q", v.Selected())
			}
		})
	}
}

func TestView_UpdateTool(t *testing.T) {
	ctx := context.Background()
	v, _ := newTestView(t)
	before, _ := v.Tool("t1")

	desc := "更新后的描述"
	if err := v.UpdateTool(ctx, "t1", model.ToolPatch{Description: &desc}); err != nil {
		t.Fatalf("UpdateTool() error = %v", err)
	}
	after, _ := v.Tool("t1")
	want := before
	want.Description = desc
	testutil.AssertToolEqual(t, want, after)

	if err := v.UpdateTool(ctx, "t1", model.ToolPatch{GroupID: testutil.StrPtr("g404")}); !errors.Is(err, ErrUnknownGroup) {
		t.Errorf("UpdateTool(unknown group) error = %v", err)
	}
	if err := v.UpdateTool(ctx, "missing", model.ToolPatch{Description: &desc}); err != nil {
		t.Errorf("UpdateTool(missing) error = %v", err)
	}
	if len(v.Tools()) != 3 {
		t.Errorf("update of missing id changed the collection")
	}
}

func TestView_RenameTool(t *testing.T) {
	ctx := context.Background()
	v, _ := newTestView(t)

	if err := v.RenameTool(ctx, "t2", "  牙轮钻头  "); err != nil {
		t.Fatalf("RenameTool() error = %v", err)
	}
	tool, _ := v.Tool("t2")
	if tool.Name != "牙轮钻头" {
		t.Errorf("Name = %q", tool.Name)
	}
	if err := v.RenameTool(ctx, "t2", " "); !errors.Is(err, ErrEmptyName) {
		t.Errorf("RenameTool(blank) error = %v", err)
	}
}

func TestView_MoveTool(t *testing.T) {
	ctx := context.Background()
	v, _ := newTestView(t)

	if err := v.MoveTool(ctx, "t1", "套管工具"); err != nil {
		t.Fatalf("MoveTool() error = %v", err)
	}
	tool, _ := v.Tool("t1")
	if tool.GroupID != "g2" {
		t.Errorf("GroupID = %q, want g2", tool.GroupID)
	}
	if err := v.MoveTool(ctx, "t1", "不存在的分组"); !errors.Is(err, ErrUnknownGroup) {
		t.Errorf("MoveTool(unknown) error = %v", err)
	}
}

func TestView_DeleteTool(t *testing.T) {
	ctx := context.Background()
	v, _ := newTestView(t)

	for i := 0; i < 2; i++ {
		if err := v.DeleteTool(ctx, "t2"); err != nil {
			t.Fatalf("DeleteTool() #%d error = %v", i, err)
		}
	}
	if got := testutil.ToolIDs(v.Tools()); !reflect.DeepEqual(got, []string{"t1", "t3"}) {
		t.Errorf("tools = %v", got)
	}
}

func TestView_Groups(t *testing.T) {
	ctx := context.Background()
	v, _ := newTestView(t)

	group, err := v.AddGroup(ctx, model.GroupInput{Name: " 泵车 "})
	if err != nil {
		t.Fatalf("AddGroup() error = %v", err)
	}
	if group.Name != "泵车" || group.Color != model.DefaultGroupColor {
		t.Errorf("AddGroup() = %+v", group)
	}
	groups := v.Groups()
	if groups[len(groups)-1].ID != group.ID {
		t.Errorf("new group should be last: %v", testutil.GroupIDs(groups))
	}

	if _, err := v.AddGroup(ctx, model.GroupInput{Name: ""}); !errors.Is(err, ErrEmptyName) {
		t.Errorf("AddGroup(empty) error = %v", err)
	}

	if err := v.UpdateGroup(ctx, group.ID, model.GroupPatch{Color: testutil.StrPtr("#6366f1")}); err != nil {
		t.Fatalf("UpdateGroup() error = %v", err)
	}
	groups = v.Groups()
	if last := groups[len(groups)-1]; last.Color != "#6366f1" || last.Name != "泵车" {
		t.Errorf("updated group = %+v", last)
	}
	if err := v.UpdateGroup(ctx, group.ID, model.GroupPatch{Name: testutil.StrPtr("")}); !errors.Is(err, ErrEmptyName) {
		t.Errorf("UpdateGroup(empty name) error = %v", err)
	}
}

func TestView_DeleteGroupKeepsToolsAndResetsFilter(t *testing.T) {
	ctx := context.Background()
	v, _ := newTestView(t)
	v.SelectGroup("g1")

	if err := v.DeleteGroup(ctx, "g1"); err != nil {
		t.Fatalf("DeleteGroup() error = %v", err)
	}
	if v.Selected() != "" {
		t.Errorf("Selected() = %q, want reset", v.Selected())
	}
	if len(v.Tools()) != 3 {
		t.Fatalf("tools were removed with their group")
	}
	tool, _ := v.Tool("t1")
	if tool.GroupID != "g1" {
		t.Errorf("GroupID = %q, orphaned tool should keep its reference", tool.GroupID)
	}
	if _, ok := v.GroupOf(tool); ok {
		t.Error("GroupOf() should report the tool as ungrouped")
	}

	// 删除其他分组不影响当前筛选
	v.SelectGroup("g3")
	if err := v.DeleteGroup(ctx, "g2"); err != nil {
		t.Fatalf("DeleteGroup() error = %v", err)
	}
	if v.Selected() != "g3" {
		t.Errorf("Selected() = %q, want g3", v.Selected())
	}
}

func TestView_ReloadMatchesLocalState(t *testing.T) {
	ctx := context.Background()
	v, gw := newTestView(t)

	if _, err := v.AddTool(ctx, testutil.SampleToolInput("g3")); err != nil {
		t.Fatalf("AddTool() error = %v", err)
	}
	if err := v.MoveTool(ctx, "t2", "测量仪器"); err != nil {
		t.Fatalf("MoveTool() error = %v", err)
	}
	if err := v.DeleteGroup(ctx, "g2"); err != nil {
		t.Fatalf("DeleteGroup() error = %v", err)
	}

	fresh := NewView(gw, zap.NewNop())
	if err := fresh.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(fresh.Tools(), v.Tools()) {
		t.Errorf("reloaded tools = %v, want %v", testutil.ToolIDs(fresh.Tools()), testutil.ToolIDs(v.Tools()))
	}
	if !reflect.DeepEqual(fresh.Groups(), v.Groups()) {
		t.Errorf("reloaded groups = %v, want %v", fresh.Groups(), v.Groups())
	}
}

func TestView_RemoveSpec(t *testing.T) {
	ctx := context.Background()
	v, gw := newTestView(t)

	if err := v.RemoveSpec(ctx, "t1", "最大转速"); err != nil {
		t.Fatalf("RemoveSpec() error = %v", err)
	}
	tool, _ := v.Tool("t1")
	want := model.Specs{{Name: "直径", Value: "8.5 英寸"}, {Name: "工作压力", Value: "15000 PSI"}}
	if !reflect.DeepEqual(tool.Specs, want) {
		t.Errorf("Specs = %v, want %v", tool.Specs, want)
	}

	// 已持久化
	stored, _ := gw.FetchTools(ctx)
	if !reflect.DeepEqual(stored[0].Specs, want) {
		t.Errorf("stored Specs = %v", stored[0].Specs)
	}

	calls := gw.calls["updateTool"]
	if err := v.RemoveSpec(ctx, "t1", "不存在"); err != nil {
		t.Errorf("RemoveSpec(missing spec) error = %v", err)
	}
	if err := v.RemoveSpec(ctx, "missing", "直径"); err != nil {
		t.Errorf("RemoveSpec(missing tool) error = %v", err)
	}
	if gw.calls["updateTool"] != calls {
		t.Error("no-op removals should not reach the gateway")
	}
}
