package k8s

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	networkingv1 "k8s.io/api/networking/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func TestListIngresses(t *testing.T) {
	ctx := context.Background()
	className := "nginx"

	t.Run("spans namespaces and picks up class and hosts", func(t *testing.T) {
		client := fake.NewSimpleClientset(
			&networkingv1.Ingress{
				ObjectMeta: metav1.ObjectMeta{Name: "whoami", Namespace: "default"},
				Spec: networkingv1.IngressSpec{
					IngressClassName: &className,
					Rules: []networkingv1.IngressRule{
						{Host: "whoami.localhost"},
					},
				},
			},
			&networkingv1.Ingress{
				ObjectMeta: metav1.ObjectMeta{
					Name:        "legacy",
					Namespace:   "apps",
					Annotations: map[string]string{"kubernetes.io/ingress.class": "nginx"},
				},
			},
		)

		infos, err := ListIngresses(ctx, client)
		require.NoError(t, err)
		require.Len(t, infos, 2)

		byName := map[string]IngressInfo{}
		for _, info := range infos {
			byName[info.Name] = info
		}

		assert.Equal(t, "default", byName["whoami"].Namespace)
		assert.Equal(t, "nginx", byName["whoami"].Class)
		assert.Equal(t, []string{"whoami.localhost"}, byName["whoami"].Hosts)

		assert.Equal(t, "apps", byName["legacy"].Namespace)
		assert.Equal(t, "nginx", byName["legacy"].Class, "class should fall back to the legacy annotation")
	})

	t.Run("empty cluster", func(t *testing.T) {
		infos, err := ListIngresses(ctx, fake.NewSimpleClientset())
		require.NoError(t, err)
		assert.Empty(t, infos)
	})
}
