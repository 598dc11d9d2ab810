package java_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodMac/go-archview/frontend"
	"github.com/CodMac/go-archview/model"
	"github.com/CodMac/go-archview/x/java"
)

const serviceSrc = `package com.shop.service;

import org.springframework.stereotype.Service;

@Service
@org.springframework.transaction.annotation.Transactional
public class OrderService extends AbstractService<Order> implements OrderApi, com.shop.Auditable {
    @Autowired
    private OrderRepository orderRepository;

    private int retries, timeout = 3;

    public OrderService(OrderRepository repo) {
        this.orderRepository = repo;
    }

    @Cacheable("orders")
    public List<Order> findAll(String customer, @Deprecated int limit) {
        return orderRepository.findAll();
    }

    static class Helper {
        void help() {}
    }
}

interface OrderApi extends Api, Closeable {
    List<Order> findAll(String customer, int limit);
}
`

func parse(t *testing.T, src string) []*model.ClassEntity {
	t.Helper()
	classes, err := java.NewFrontend().Parse("OrderService.java", []byte(src))
	require.NoError(t, err)
	return classes
}

func TestJavaFrontend_Service(t *testing.T) {
	classes := parse(t, serviceSrc)
	require.Len(t, classes, 2, "只收集顶层类型声明")

	svc := classes[0]
	t.Run("Verify Declaration", func(t *testing.T) {
		assert.Equal(t, "OrderService", svc.Name)
		assert.Equal(t, "com.shop.service", svc.Package)
		assert.Equal(t, "com.shop.service.OrderService", svc.QualifiedName)
		assert.Equal(t, model.KindClass, svc.Kind)
		assert.Equal(t, []string{"Service", "Transactional"}, svc.Annotations)
		assert.Equal(t, "AbstractService", svc.Extends)
		assert.Equal(t, []string{"OrderApi", "Auditable"}, svc.Implements)
	})

	t.Run("Verify Members", func(t *testing.T) {
		require.Len(t, svc.Fields, 3)
		assert.Equal(t, "orderRepository", svc.Fields[0].Name)
		assert.Equal(t, "OrderRepository", svc.Fields[0].Type)
		assert.Equal(t, []string{"Autowired"}, svc.Fields[0].Annotations)
		assert.Equal(t, "retries", svc.Fields[1].Name)
		assert.Equal(t, "timeout", svc.Fields[2].Name)
		assert.Equal(t, "int", svc.Fields[2].Type)

		require.Len(t, svc.Methods, 1, "构造函数与嵌套类的方法不计入")
		m := svc.Methods[0]
		assert.Equal(t, "findAll", m.Name)
		assert.Equal(t, "List<Order>", m.ReturnType)
		assert.Equal(t, []string{"String customer", "int limit"}, m.Parameters)
		assert.Equal(t, []string{"Cacheable"}, m.Annotations)
	})

	t.Run("Verify Location Span", func(t *testing.T) {
		require.NotNil(t, svc.Location)
		assert.Equal(t, 5, svc.Location.StartLine)
		span := serviceSrc[svc.Location.StartByte:svc.Location.EndByte]
		assert.Contains(t, span, "@Service")
		assert.NotContains(t, span, "interface OrderApi")
	})

	t.Run("Verify Interface", func(t *testing.T) {
		api := classes[1]
		assert.Equal(t, "OrderApi", api.Name)
		assert.Equal(t, model.KindInterface, api.Kind)
		assert.Equal(t, "Api", api.Extends)
		assert.Equal(t, []string{"Closeable"}, api.Implements)
		require.Len(t, api.Methods, 1)
		assert.Equal(t, "findAll", api.Methods[0].Name)
	})
}

func TestJavaFrontend_EnumAndRecord(t *testing.T) {
	src := `enum Status implements Labeled {
    OPEN, CLOSED;
    private String label;
    public String label() { return label; }
}

record Money(long amount, String currency) {}
`
	classes := parse(t, src)
	require.Len(t, classes, 2)

	status := classes[0]
	assert.Equal(t, model.KindEnum, status.Kind)
	assert.Equal(t, java.DefaultPackage, status.Package)
	assert.Equal(t, []string{"Labeled"}, status.Implements)
	require.Len(t, status.Fields, 1)
	assert.Equal(t, "label", status.Fields[0].Name)
	require.Len(t, status.Methods, 1)

	money := classes[1]
	assert.Equal(t, model.KindRecord, money.Kind)
	require.Len(t, money.Fields, 2)
	assert.Equal(t, "amount", money.Fields[0].Name)
	assert.Equal(t, "long", money.Fields[0].Type)
}

func TestJavaFrontend_NoDeclaration(t *testing.T) {
	assert.Empty(t, parse(t, "package com.shop;\n\nimport java.util.List;\n"))
}

func TestJavaFrontend_Registered(t *testing.T) {
	fe, err := frontend.Get(model.LangJava)
	require.NoError(t, err)
	classes, err := fe.Parse("Foo.java", []byte("class Foo extends Bar implements Baz {}"))
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, "Bar", classes[0].Extends)
	assert.Equal(t, []string{"Baz"}, classes[0].Implements)
}
