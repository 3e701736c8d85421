package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testCellComponent struct {
	X, Y int
}

type testOwnerComponent struct {
	Owner string
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// 测试实体ID唯一性
	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}

	if id2 != 2 {
		t.Errorf("Second entity ID should be 2, got %d", id2)
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.AddComponent(id, &testCellComponent{X: 3, Y: 4})

	comp, found := em.GetComponentByType(id, reflect.TypeOf(&testCellComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}
	retrieved := comp.(*testCellComponent)
	if retrieved.X != 3 || retrieved.Y != 4 {
		t.Errorf("Component data mismatch, expected (3, 4), got (%d, %d)", retrieved.X, retrieved.Y)
	}

	// 泛型版本
	typed, ok := GetComponent[*testCellComponent](em, id)
	if !ok || typed != retrieved {
		t.Error("GetComponent[T] should return the same pointer")
	}

	if _, ok := GetComponent[*testOwnerComponent](em, id); ok {
		t.Error("missing component type should not be found")
	}
}

// TestDestroyEntityImmediate 测试删除立即生效且重复删除返回 false
func TestDestroyEntityImmediate(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testCellComponent{})

	if !em.DestroyEntity(id) {
		t.Fatal("first DestroyEntity should succeed")
	}
	if em.IsAlive(id) {
		t.Error("entity should be gone right after DestroyEntity")
	}
	if em.HasComponent(id, reflect.TypeOf(&testCellComponent{})) {
		t.Error("components should be gone with the entity")
	}
	if em.DestroyEntity(id) {
		t.Error("second DestroyEntity should report false")
	}
	if em.DestroyEntity(InvalidEntity) {
		t.Error("destroying the invalid ID should report false")
	}
}

// TestGetEntitiesWithOrder 测试查询结果按创建顺序排列
func TestGetEntitiesWithOrder(t *testing.T) {
	em := NewEntityManager()

	var ids []EntityID
	for i := 0; i < 50; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testCellComponent{X: i})
		ids = append(ids, id)
	}
	// 删除中间的若干实体
	em.DestroyEntity(ids[10])
	em.DestroyEntity(ids[20])

	got := GetEntitiesWith[*testCellComponent](em)
	if len(got) != 48 {
		t.Fatalf("expected 48 entities, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1] >= got[i] {
			t.Fatalf("result not in creation order at %d: %v", i, got)
		}
	}
}

func TestGetEntitiesWithTypes(t *testing.T) {
	em := NewEntityManager()

	id1 := em.CreateEntity()
	em.AddComponent(id1, &testCellComponent{})
	em.AddComponent(id1, &testOwnerComponent{})

	id2 := em.CreateEntity()
	em.AddComponent(id2, &testCellComponent{})

	id3 := em.CreateEntity()
	em.AddComponent(id3, &testOwnerComponent{})

	both := em.GetEntitiesWithTypes(
		reflect.TypeOf(&testCellComponent{}),
		reflect.TypeOf(&testOwnerComponent{}),
	)
	if len(both) != 1 || both[0] != id1 {
		t.Errorf("expected only id1, got %v", both)
	}

	cells := em.GetEntitiesWithTypes(reflect.TypeOf(&testCellComponent{}))
	if len(cells) != 2 {
		t.Errorf("expected 2 entities with cell component, got %d", len(cells))
	}

	em.RemoveComponent(id1, reflect.TypeOf(&testCellComponent{}))
	if em.HasComponent(id1, reflect.TypeOf(&testCellComponent{})) {
		t.Error("component should be removed")
	}
	if em.Count() != 3 {
		t.Errorf("Count() = %d, want 3", em.Count())
	}
}
